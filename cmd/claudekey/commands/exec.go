package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agencykit/claudekey/internal/config"
	"github.com/agencykit/claudekey/internal/credentials"
	ckerrors "github.com/agencykit/claudekey/internal/errors"
	"github.com/agencykit/claudekey/internal/execenv"
	"github.com/agencykit/claudekey/internal/secure"
)

func NewExecCommand(cfg *config.Config) *cobra.Command {
	var (
		allowOverride bool
		printVars     bool
		workingDir    string
		timeout       int
		optional      bool
	)

	cmd := &cobra.Command{
		Use:   "exec -- command [args...]",
		Short: "Run a command with the resolved credential in its environment",
		Long: `Resolve the Anthropic API key and launch a command with it injected
as ANTHROPIC_API_KEY. The key lives only in the child's environment;
nothing is written to disk or to the parent shell.

Examples:
  # Run an agent script with the key injected
  claudekey exec -- python agent.py

  # Keep a key already present in the environment
  claudekey exec --allow-override -- npm start

  # Proceed without a key instead of failing
  claudekey exec --optional -- make test`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(cfg)

			key, ok := resolver.APIKeyFor(cfg.Settings.Account)
			if !ok && !optional {
				return ckerrors.NoCredentialError(credentials.SourcesTried())
			}

			env := make(map[string]string)
			if ok {
				// Hold the key in protected memory until the child env is built
				buf := secure.NewBufferFromString(key)
				defer buf.Destroy()

				locked, err := buf.Open()
				if err != nil {
					return ckerrors.UserError{
						Message: "Failed to access protected credential memory",
						Details: err.Error(),
						Err:     err,
					}
				}
				defer locked.Destroy()

				env[credentials.EnvAPIKey] = locked.String()
			}

			executor := execenv.New(cfg.Logger)
			return executor.Exec(context.Background(), execenv.Options{
				Command:       args,
				Environment:   env,
				AllowOverride: allowOverride,
				PrintVars:     printVars,
				WorkingDir:    workingDir,
				Timeout:       timeout,
			})
		},
	}

	cmd.Flags().BoolVar(&allowOverride, "allow-override", false, "Keep existing environment values instead of replacing them")
	cmd.Flags().BoolVar(&printVars, "print-vars", false, "Print injected variable names with masked values")
	cmd.Flags().StringVar(&workingDir, "dir", "", "Working directory for the command")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Timeout in seconds (0 for none)")
	cmd.Flags().BoolVar(&optional, "optional", false, "Run the command even when no credential resolves")

	return cmd
}
