package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/services"
)

// OverrideOutcomeCmd creates the overrideOutcome command
func OverrideOutcomeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "overrideOutcome <student_id> <accepted|rejected>",
		Short: "Manually set one student's admission outcome",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID := args[0]
			outcome := model.OutcomeStatus(args[1])

			app.Logger.Debug("overrideOutcome command",
				zap.String("student_id", studentID),
				zap.String("outcome", string(outcome)))

			if err := services.OverrideOutcome(app.Ctx, app.Database, app.Logger, studentID, outcome); err != nil {
				return err
			}

			fmt.Printf("\n✓ Student %s outcome set to %s\n\n", studentID, outcome)
			return nil
		},
	}
}
