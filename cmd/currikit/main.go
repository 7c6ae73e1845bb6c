package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:           "currikit",
		Short:         "Curriculum generation, validation and repair toolkit",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		auditCMD(),
		judgeCMD(),
		repairCMD(),
		generateCMD(),
		mergeCMD(),
		schemaCMD(),
		uploadCMD(),
		dbStatusCMD(),
		migrateCMD(),
		remoteCMD(),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
