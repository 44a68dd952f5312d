// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/routeguard/routeguard/internal/config"
)

var (
	configPath string   // directory holding main.toml
	envFiles   []string // .env files loaded before the config is read

	rootCmd = &cobra.Command{
		Use:   "routeguard",
		Short: "routeguard guards web routes by the auth token cookie",
		Long: `routeguard serves a web front end for an external auth API.

Its route guard sends visitors without a token cookie away from protected
pages and logged in visitors away from the login and registration pages.
The client commands talk to the same auth API from the shell.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(envFiles...)
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func readConfig() (config.Config, error) {
	return config.ReadConfig(configPath)
}
