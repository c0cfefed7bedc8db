package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yourusername/trivia-catalog/internal/config"
)

type app struct {
	configPath string
}

func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.configPath)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config/config.yaml"
	}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "administration tool for the trivia catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfig, "path to config file")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newTokenCmd(a),
	)
	return root
}
