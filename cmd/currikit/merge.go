package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/curriculum"
)

func mergeCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Deduplicate and merge curriculum sets sharing grade, topic and title",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if datasetPath == "" {
				datasetPath = cfg.Dataset.Path
			}

			sets, err := curriculum.Load(datasetPath)
			if err != nil {
				return err
			}
			merged, stats := curriculum.Merge(sets)

			fmt.Printf("Sets: %d -> %d (%d duplicate groups)\n", stats.InputSets, stats.OutputSets, stats.DuplicateGroups)
			fmt.Printf("Questions: %d -> %d unique\n", stats.QuestionsBefore, stats.QuestionsAfter)

			if dryRun {
				fmt.Println("Dry run, dataset not modified.")
				return nil
			}
			return curriculum.Save(datasetPath, merged)
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would merge without writing")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
