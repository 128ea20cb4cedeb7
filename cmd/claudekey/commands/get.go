package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/agencykit/claudekey/internal/config"
	"github.com/agencykit/claudekey/internal/credentials"
	ckerrors "github.com/agencykit/claudekey/internal/errors"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		show       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Resolve and print the Anthropic API key",
		Long: `Resolve the Anthropic API key and print it.

The key is masked by default so it can be eyeballed safely. Use --show
to print the raw value for scripting, or --json for the full credential
bundle with per-source metadata.

Examples:
  # Check which key would be used
  claudekey get

  # Use in scripts
  export ANTHROPIC_API_KEY=$(claudekey get --show)

  # Full bundle as JSON (key stays masked unless --show is also given)
  claudekey get --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(cfg)

			if jsonOutput {
				return printBundleJSON(cmd, cfg, resolver, show)
			}

			key, ok := resolver.APIKeyFor(cfg.Settings.Account)
			if !ok {
				return ckerrors.NoCredentialError(credentials.SourcesTried())
			}

			if show {
				cmd.Print(key)
				return nil
			}
			cmd.Println(credentials.MaskDefault(key))
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the raw key instead of a masked form")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full credential bundle as JSON")

	return cmd
}

func printBundleJSON(cmd *cobra.Command, cfg *config.Config, resolver *credentials.Resolver, show bool) error {
	// One store walk; the environment check carries the same precedence
	// as Resolver.APIKeyFor without a second round of queries.
	bundle := resolver.Resolve(cfg.Settings.Account)

	key := os.Getenv(credentials.EnvAPIKey)
	source := "environment"
	if key == "" {
		key = bundle.APIKey
		source = "keychain"
	}
	resolved := key != ""
	if !resolved {
		source = "none"
	}

	display := ""
	if resolved {
		display = credentials.MaskDefault(key)
		if show {
			display = key
		}
	}

	output := map[string]interface{}{
		"resolved":          resolved,
		"api_key":           display,
		"source":            source,
		"mcp_oauth_servers": len(bundle.MCPOAuthTokens),
		"session_token":     bundle.SessionToken != "",
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
