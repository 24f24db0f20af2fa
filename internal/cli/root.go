package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xifanyan/helpspot"
)

var (
	ctx    context.Context
	client *helpspot.Client
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:               "hs",
	Short:             "Command line client for the HelpSpot helpdesk API",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hs.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd, testCmd, configCmd, ticketCmd, categoryCmd, fieldCmd, statusCmd, filterCmd, customerCmd)
	cobra.OnInitialize(initConfig)
}

func preRun(cmd *cobra.Command, args []string) error {
	ctx = context.Background()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	file, err := openLogFile(filepath.Join(home, ".hs.log"))
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	if err := setLogger(file); err != nil {
		return fmt.Errorf("setting logger: %w", err)
	}

	if err := viper.Unmarshal(&conf); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}

	// the config command exists to fix broken credentials, so it must run
	// without a constructible client
	if cmd.Name() == "config" {
		return nil
	}

	client, err = newClient()
	if err != nil {
		return fmt.Errorf("building helpspot client: %w", err)
	}

	return nil
}
