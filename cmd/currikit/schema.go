package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/curriculum"
)

func schemaCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Validate the dataset file against the curriculum JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if datasetPath == "" {
				datasetPath = cfg.Dataset.Path
			}

			violations, err := curriculum.CheckSchemaFile(datasetPath)
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				fmt.Println("Dataset conforms to schema.")
				return nil
			}
			for _, v := range violations {
				fmt.Println(v)
			}
			return fmt.Errorf("%d schema violations", len(violations))
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
