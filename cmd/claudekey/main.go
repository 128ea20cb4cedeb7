package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/agencykit/claudekey/cmd/claudekey/commands"
	"github.com/agencykit/claudekey/internal/config"
	"github.com/agencykit/claudekey/internal/logging"
	"github.com/agencykit/claudekey/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer memguard.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.Purge()
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		settingsFile   string
		noColor        bool
		debug          bool
		account        string
		nonInteractive bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "claudekey",
		Short: "Resolve Anthropic API credentials from the OS keychain",
		Long: `claudekey discovers the Anthropic API key that Claude Code stores in
your OS keychain (or the ANTHROPIC_API_KEY environment variable) and
hands it to whatever needs it: your shell, a child process, or an API
client. Nothing is ever written back to the keychain.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = settingsFile
			if err := cfg.Load(); err != nil {
				return err
			}

			// Flags beat settings-file and environment values
			if debug {
				cfg.Settings.Debug = true
			}
			if noColor {
				cfg.Settings.NoColor = true
			}
			if account != "" {
				cfg.Settings.Account = account
			}

			cfg.Logger = logging.New(cfg.Settings.Debug, cfg.Settings.NoColor)
			cfg.NonInteractive = nonInteractive

			metrics.Init()
			return nil
		},
	}

	// Command output (keys, env lines) goes to stdout so it can be piped;
	// cobra would otherwise fall back to stderr
	rootCmd.SetOut(os.Stdout)

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", config.DefaultPath(), "Settings file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable per-store diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&account, "account", "", "Keychain account name to query with")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Non-interactive mode")

	// Add commands
	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewEnvCommand(cfg),
		commands.NewExecCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
