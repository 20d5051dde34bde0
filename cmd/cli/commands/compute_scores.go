package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/services"
)

// ComputeScoresCmd creates the computeScores command
func ComputeScoresCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "computeScores",
		Short: "Recompute and persist composite scores for verified students",
		Long: `Rebuild each verified student's report-card average from semester grades,
recompute the composite score under the path's weights, and persist the
results in a single transaction. Run this whenever raw grade inputs change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pathFlag, _ := cmd.Flags().GetString("path")
			waveID, _ := cmd.Flags().GetString("wave")

			app.Logger.Debug("computeScores command",
				zap.String("path", pathFlag),
				zap.String("wave", waveID))

			result, err := services.ComputeScores(app.Ctx, app.Database, app.Cfg, app.Logger, services.ComputeScoresOptions{
				Path:   model.AdmissionPath(pathFlag),
				WaveID: waveID,
			})
			if err != nil {
				return fmt.Errorf("score computation failed: %w", err)
			}

			fmt.Printf("\n✓ Composite scores recomputed for %d students\n\n", result.Updated)
			for _, s := range result.Students {
				fmt.Printf("  %-36s  %-26s  report %6.2f  final %6.2f\n", s.Name, s.Path, s.ReportAverage, s.FinalScore)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("path", "", "Restrict to one admission path")
	cmd.Flags().String("wave", "", "Restrict to one enrollment wave id")

	return cmd
}
