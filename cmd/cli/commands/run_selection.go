package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/services"
)

// RunSelectionCmd creates the runSelection command
func RunSelectionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runSelection",
		Short: "Rank verified candidates and commit accept/reject decisions against quotas",
		Long: `Run the selection pipeline: read the verified candidate snapshot, rank by
composite score, partition per admission path against configured quotas, and
commit the outcomes. Use --path to process a single path; without it the
whole cohort is processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pathFlag, _ := cmd.Flags().GetString("path")
			waveID, _ := cmd.Flags().GetString("wave")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("runSelection command",
				zap.String("path", pathFlag),
				zap.String("wave", waveID),
				zap.Bool("dry_run", dryRun))

			result, err := services.RunSelection(app.Ctx, app.Database, app.Notifier, app.Cfg, app.Logger, services.RunSelectionOptions{
				Path:   model.AdmissionPath(pathFlag),
				WaveID: waveID,
				DryRun: dryRun,
			})
			if err != nil {
				return fmt.Errorf("selection failed: %w", err)
			}

			fmt.Printf("\n🎯 Selection Results\n\n")
			if dryRun {
				fmt.Printf("Mode:      🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Mode:      ✅ COMMITTED\n")
			}
			fmt.Printf("Paths:     %v\n", result.Paths)
			fmt.Printf("Accepted:  %d\n", result.AcceptedCount)
			fmt.Printf("Rejected:  %d\n", result.RejectedCount)
			fmt.Printf("Processed: %d\n\n", result.TotalProcessed)

			for _, path := range result.Paths {
				pathAlloc, ok := result.Allocation.ByPath[path]
				if !ok {
					continue
				}
				fmt.Printf("  %-26s accepted %d, rejected %d\n", path, len(pathAlloc.Accepted), len(pathAlloc.Rejected))
			}
			fmt.Println()

			if result.AuditError != "" {
				fmt.Printf("⚠️  Audit log write failed: %s\n", result.AuditError)
			}
			if len(result.NotifyFailures) > 0 {
				fmt.Printf("⚠️  Failed to notify %d students:\n", len(result.NotifyFailures))
				for _, nf := range result.NotifyFailures {
					fmt.Printf("  ✗ %s (%s): %s\n", nf.StudentID, nf.Email, nf.Error)
				}
				fmt.Println()
				fmt.Println("Outcomes are committed; only the notifications above failed.")
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to commit outcomes.")
			}

			return nil
		},
	}

	cmd.Flags().String("path", "", "Process a single admission path (regular, affirmation, academic_achievement, non_academic_achievement)")
	cmd.Flags().String("wave", "", "Restrict to one enrollment wave id")
	cmd.Flags().Bool("dry-run", false, "Compute the allocation without committing outcomes")

	return cmd
}
