package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/services"
)

// ListCandidatesCmd creates the listCandidates command
func ListCandidatesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listCandidates",
		Short: "Show the ranked candidate list without committing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			pathFlag, _ := cmd.Flags().GetString("path")
			waveID, _ := cmd.Flags().GetString("wave")

			rows, err := services.ListCandidates(app.Ctx, app.Database, app.Cfg, app.Logger, model.AdmissionPath(pathFlag), waveID)
			if err != nil {
				return fmt.Errorf("failed to list candidates: %w", err)
			}

			if len(rows) == 0 {
				fmt.Println("\nNo verified candidates match the filter.")
				return nil
			}

			fmt.Printf("\nFound %d verified candidates:\n\n", len(rows))
			fmt.Printf("%4s  %-36s  %-26s  %7s  %s\n", "Rank", "Name", "Path", "Score", "Outcome")
			for _, row := range rows {
				fmt.Printf("%4d  %-36s  %-26s  %7.2f  %s\n", row.Rank, row.Name, row.Path, row.FinalScore, row.Outcome)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("path", "", "Restrict to one admission path")
	cmd.Flags().String("wave", "", "Restrict to one enrollment wave id")

	return cmd
}
