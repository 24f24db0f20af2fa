package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/xifanyan/helpspot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the server's API version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		vi, err := client.Version(ctx)
		if err != nil {
			return err
		}

		fmt.Println(kv("Version", vi.Version))
		fmt.Println(kv("Minimum version", vi.MinVersion))
		return nil
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity and credentials against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return connectionTest()
	},
}

func connectionTest() error {
	vi, err := client.Version(ctx)
	if err != nil {
		return fmt.Errorf("connection test: %w", err)
	}

	fmt.Printf("Connected - server version %s\n", vi.Version)

	ok, err := vi.Compatible(helpspot.ClientAPIVersion)
	if err != nil {
		slog.Debug("could not parse server version for compatibility check", "error", err)
		return nil
	}
	if !ok {
		fmt.Printf("Warning: server requires API version %s or later\n", vi.MinVersion)
	}
	return nil
}
