package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/generate"
)

func generateCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string
	var gradeFilter int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Bulk-generate question sets through the configured LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if datasetPath == "" {
				datasetPath = cfg.Dataset.Path
			}

			llm, err := cfg.LLM.Resolve("generation")
			if err != nil {
				return err
			}
			prov, err := providerFromConfig(llm)
			if err != nil {
				return err
			}

			plan := generate.DefaultPlan()
			if gradeFilter >= 0 {
				filtered := plan[:0]
				for _, t := range plan {
					if t.Grade == gradeFilter {
						filtered = append(filtered, t)
					}
				}
				plan = filtered
			}

			logger := log.New(os.Stdout, "[GENERATE] ", log.LstdFlags)
			gen := generate.NewGenerator(prov, logger, generate.Options{
				QuestionsPerSet: cfg.Generate.QuestionsPerSet,
				Delay:           cfg.Generate.Delay,
				MaxRetries:      cfg.Generate.MaxRetries,
				RetryWait:       cfg.Generate.RetryWait,
			})

			stats, err := gen.Run(cmd.Context(), datasetPath, plan)
			fmt.Printf("Generated %d sets, skipped %d existing, %d failed, %d questions dropped.\n",
				stats.Generated, stats.Skipped, stats.Failed, stats.Dropped)
			return err
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.Flags().IntVar(&gradeFilter, "grade", -1, "only generate for this grade level")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
