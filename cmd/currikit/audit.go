package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/audit"
	"github.com/mathtrail/currikit/internal/curriculum"
)

func auditCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the curriculum for age-appropriateness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if datasetPath == "" {
				datasetPath = cfg.Dataset.Path
			}
			if reportPath == "" {
				reportPath = cfg.Dataset.ReportPath
			}

			sets, err := curriculum.Load(datasetPath)
			if err != nil {
				return err
			}
			report, err := audit.Run(sets, audit.DefaultPolicies())
			if err != nil {
				return err
			}

			report.Render(os.Stdout)
			if err := report.WriteJSON(reportPath); err != nil {
				return err
			}
			fmt.Printf("\nFull report saved to: %s\n", reportPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.Flags().StringVar(&reportPath, "out", "", "report output file (default from config)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
