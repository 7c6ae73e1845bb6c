package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/judge"
	"github.com/mathtrail/currikit/provider"
)

func providerFromConfig(p config.LLMProvider) (provider.Provider, error) {
	return provider.New(provider.Client(p.Type), provider.Options{
		APIKey:      p.APIKey,
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Timeout:     p.Timeout,
		MaxRetries:  p.MaxRetries,
	})
}

func judgeCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Run the LLM judge over the dataset and write a findings report",
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

			logger := log.New(os.Stdout, "[JUDGE] ", log.LstdFlags)
			runID := uuid.NewString()
			logger.Printf("run %s: dataset %s", runID, datasetPath)

			sets, err := curriculum.Load(datasetPath)
			if err != nil {
				return err
			}

			llm, err := cfg.LLM.Resolve("judging")
			if err != nil {
				return err
			}
			prov, err := providerFromConfig(llm)
			if err != nil {
				return err
			}

			var cache judge.Cache
			if cfg.Judge.Cache.Enabled {
				rc, err := judge.NewRedisCache(cmd.Context(), cfg.Judge.Cache.Addr, cfg.Judge.Cache.Password, cfg.Judge.Cache.DB, cfg.Judge.Cache.TTL)
				if err != nil {
					// Cache is an optimization; judge without it.
					logger.Printf("verdict cache unavailable: %v", err)
				} else {
					defer rc.Close()
					cache = rc
				}
			}

			runner := judge.NewRunner(prov, cache, logger, judge.Options{
				BatchDelay: cfg.Judge.BatchDelay,
				MaxRetries: cfg.Judge.MaxRetries,
				RetryWait:  cfg.Judge.RetryWait,
			})

			start := time.Now()
			findings, err := runner.Run(cmd.Context(), sets)
			if err != nil {
				return err
			}
			if err := judge.WriteReport(reportPath, findings); err != nil {
				return err
			}
			fmt.Printf("Audit complete in %s. Total errors found: %d\n", time.Since(start).Round(time.Second), len(findings))
			if len(findings) > 0 {
				fmt.Printf("See %s for details.\n", reportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.Flags().StringVar(&reportPath, "out", "", "findings report output file (default from config)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
