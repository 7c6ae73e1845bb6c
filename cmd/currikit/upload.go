package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/curriculum"
	"github.com/mathtrail/currikit/internal/store"
)

func storeDSN(cfg *config.Config) (string, error) {
	p := cfg.Storage.Postgres
	return store.BuildDSN(p.URL, p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

func uploadCMD() *cobra.Command {
	var cfgPath string
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Publish the curriculum dataset to the hosted backend",
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

			dsn, err := storeDSN(cfg)
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer st.Close()

			logger := log.New(os.Stdout, "[UPLOAD] ", log.LstdFlags)
			logger.Printf("found %d curriculum sets, uploading", len(sets))
			res, err := st.UploadCurriculum(cmd.Context(), sets, logger)
			if err != nil {
				return err
			}
			fmt.Printf("Upload complete. Success: %d, Fail: %d\n", res.Success, res.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "curriculum dataset file (default from config)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}

func dbStatusCMD() *cobra.Command {
	var cfgPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "db-status",
		Short: "Inspect the published curriculum table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			dsn, err := storeDSN(cfg)
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer st.Close()

			total, err := st.CountSets(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Published sets: %d\n", total)

			byGrade, err := st.GradeCounts(cmd.Context())
			if err != nil {
				return err
			}
			for label, n := range byGrade {
				fmt.Printf("  %s: %d\n", label, n)
			}

			recent, err := st.RecentSets(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Println("Most recent:")
			for _, r := range recent {
				fmt.Printf("  %s  %s (%s, %d questions, %s)\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Title, curriculum.GradeLabel(r.Grade), r.Questions, r.Status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of recent rows to show")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
