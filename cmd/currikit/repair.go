package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/jsonx"
	"github.com/mathtrail/currikit/internal/repair"
)

func repairCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string
	var reportPath string
	var logPath string

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Apply the judge's findings to the dataset",
		Long: `Reconciles a findings report against the curriculum dataset: corrects
answer keys, rewrites wrong option text, or deletes questions the judge
flagged as unfixable. The patched dataset overwrites the input file and every
edit is recorded in the fix log.`,
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
			if logPath == "" {
				logPath = cfg.Dataset.FixLogPath
			}

			logger := log.New(os.Stdout, "[REPAIR] ", log.LstdFlags)
			runID := uuid.NewString()

			sets, err := curriculum.Load(datasetPath)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(reportPath)
			if err != nil {
				return fmt.Errorf("read findings report: %w", err)
			}
			var findings []repair.Finding
			if err := jsonx.UnmarshalArray(string(raw), &findings); err != nil {
				// Judge output can be malformed; zero findings, not fatal.
				logger.Printf("unparseable findings report, applying zero findings: %v", err)
				findings = nil
			}

			logger.Printf("run %s: processing %d findings", runID, len(findings))
			rec := repair.NewReconciler(sets, logger)
			summary := rec.Apply(findings)

			// Outputs are written even when some findings failed to resolve.
			if err := curriculum.Save(datasetPath, sets); err != nil {
				return err
			}
			if err := repair.WriteLogFile(logPath, runID, summary, rec.Entries()); err != nil {
				return err
			}

			if broken := rec.Verify(); broken > 0 {
				logger.Printf("WARNING: %d questions still have an answer missing from options", broken)
			}
			fmt.Printf("Done. %s Log saved to %s.\n", summary, logPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "findings report file (default from config)")
	cmd.Flags().StringVar(&logPath, "log", "", "fix log output file (default from config)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
