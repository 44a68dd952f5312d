package app

import (
	"github.com/spf13/cobra"

	"github.com/routeguard/routeguard/internal/config"
	"github.com/routeguard/routeguard/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (no Secure cookies, templates from disk)")
	startCmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "Print the effective config as TOML and exit")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode    bool
	dumpConfig bool
	cfg        config.Config

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the routeguard web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = readConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dumpConfig {
				out, err := config.DumpConfig(&cfg)
				if err != nil {
					return err
				}

				cmd.Print(out)

				return nil
			}

			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
