package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/agencykit/claudekey/internal/config"
)

func NewEnvCommand(cfg *config.Config) *cobra.Command {
	var exportPrefix bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the resolved credential as environment assignments",
		Long: `Materialize the resolved credential as KEY=value lines.

When no credential resolves the output is empty and the exit code is
still zero. Absence is the caller's problem to judge, not an error.

Examples:
  # Load the key into the current shell
  eval "$(claudekey env --export)"

  # Write an env file for docker compose
  claudekey env > .env.anthropic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(cfg)
			env := resolver.Environment(cfg.Settings.Account)

			names := make([]string, 0, len(env))
			for name := range env {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				if exportPrefix {
					cmd.Printf("export %s=%s\n", name, env[name])
				} else {
					cmd.Printf("%s=%s\n", name, env[name])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exportPrefix, "export", false, "Prefix each line with 'export' for shell eval")

	return cmd
}
