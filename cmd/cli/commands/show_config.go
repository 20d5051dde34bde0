package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
)

// ShowConfigCmd creates the showConfig command
func ShowConfigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showConfig",
		Short: "Show the resolved weights and quotas per admission path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weightCfg := app.Cfg.WeightConfig()
			quotas := app.Cfg.SelectionQuotas()

			fmt.Printf("\nResolved weights (integer percentages; achievement is an additive bonus):\n\n")
			fmt.Printf("%-26s  %6s  %6s  %6s  %11s  %5s\n", "Path", "Report", "Exam", "Skills", "Achievement", "Quota")
			for _, path := range model.AllPaths() {
				pct := selection.EffectivePercentages(path, weightCfg)
				fmt.Printf("%-26s  %6d  %6d  %6d  %11d  %5d\n",
					path, pct.Report, pct.Exam, pct.Skills, pct.Achievement, quotas.PerPath[path])
			}
			fmt.Printf("\nTotal capacity: %d\n\n", quotas.Total)

			return nil
		},
	}
}
