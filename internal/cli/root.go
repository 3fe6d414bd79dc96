package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "tvctl",
	Short: "TaskVault CLI",
	Long: `tvctl is the command-line interface for the TaskVault todo service.

Register, log in, and manage your todos from the terminal.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.taskvault/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "default", "profile to use")
	rootCmd.PersistentFlags().String("output", "table", "output format: table, json")
	rootCmd.PersistentFlags().String("server", "", "server URL (default from profile, falls back to http://localhost:8080)")
}

func initConfig() {
	var err error
	cfg, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = DefaultConfig()
	}
}

// serverURL resolves the API base URL from the --server flag, the active
// profile, or the local default, in that order.
func serverURL(cmd *cobra.Command) string {
	if url, _ := cmd.Flags().GetString("server"); url != "" {
		return url
	}
	profile, _ := cmd.Flags().GetString("profile")
	if p, ok := cfg.Profiles[profile]; ok && p.ServerURL != "" {
		return p.ServerURL
	}
	return "http://localhost:8080"
}

// activeProfile returns the stored credentials for the selected profile,
// failing when the user has never logged in.
func activeProfile(cmd *cobra.Command) (*Profile, error) {
	name, _ := cmd.Flags().GetString("profile")
	return cfg.GetProfile(name)
}
