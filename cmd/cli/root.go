package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:3000"

var serverURL string

var rootCmd = &cobra.Command{
	Use:           "review-cli",
	Short:         "review-cli is the command-line client of the code reviewer service.",
	Long:          `A CLI that sends source files to the code reviewer service and renders the AI review in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServerURL, "Base URL of the code reviewer service")

	if err := viper.BindPFlag("SERVER_URL", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads ENV variables if set. CR_SERVER_URL overrides the default server.
func initConfig() {
	viper.SetEnvPrefix("CR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
