package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathtrail/currikit/config"
	"github.com/mathtrail/currikit/internal/remote"
)

func remoteExecutor(cfg *config.Config) (*remote.Executor, error) {
	return remote.NewExecutor(remote.Options{
		Host:            cfg.Remote.Host,
		Port:            cfg.Remote.Port,
		User:            cfg.Remote.User,
		Password:        cfg.Remote.Password,
		KeyFile:         cfg.Remote.KeyFile,
		InsecureHostKey: cfg.Remote.InsecureHostKey,
	})
}

func remoteCMD() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Run commands on the generation VPS",
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	run := &cobra.Command{
		Use:   "run <command>...",
		Short: "Execute a command on the VPS and print its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			exec, err := remoteExecutor(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Remote.CommandTimeout)
			defer cancel()

			out, err := exec.Run(ctx, strings.Join(args, " "))
			fmt.Print(out)
			return err
		},
	}

	var lines int
	tail := &cobra.Command{
		Use:   "tail [path]",
		Short: "Tail the generation log (or another remote file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			exec, err := remoteExecutor(cfg)
			if err != nil {
				return err
			}
			path := cfg.Remote.LogPath
			if len(args) == 1 {
				path = args[0]
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Remote.CommandTimeout)
			defer cancel()

			out, err := exec.TailLog(ctx, path, lines)
			fmt.Print(out)
			return err
		},
	}
	tail.Flags().IntVar(&lines, "lines", 50, "number of lines to show")

	cmd.AddCommand(run, tail)
	return cmd
}
