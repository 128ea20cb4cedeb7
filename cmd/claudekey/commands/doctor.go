package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/agencykit/claudekey/internal/config"
	"github.com/agencykit/claudekey/internal/credentials"
	"github.com/agencykit/claudekey/internal/keychain"
)

// storeHealth is one row of the doctor report
type storeHealth struct {
	Name     string
	Service  string
	Status   string
	Detail   string
	Warnings []string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check credential sources and report what resolution would find",
		Long: `Probe every credential source in precedence order and report:
- whether the environment override is set
- whether the OS keychain is available (and whether the session is headless)
- per store: whether data was returned and whether a credential could be
  extracted, with secrets shown only in masked form
- advisory warnings about the structured credentials payload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			accessor := accessorFactory(cfg)

			// Environment override first: it beats every store
			if key := os.Getenv(credentials.EnvAPIKey); key != "" {
				cfg.Logger.Info("%s set in environment: %s (overrides all stores)",
					credentials.EnvAPIKey, credentials.MaskDefault(key))
			} else {
				cfg.Logger.Warn("%s not set in environment", credentials.EnvAPIKey)
			}

			if err := accessor.Validate(); err != nil {
				if errors.Is(err, keychain.ErrUnsupportedPlatform) {
					cfg.Logger.Error("No OS keychain available on this platform")
				} else {
					cfg.Logger.Error("OS keychain failed validation: %v", err)
				}
			} else if accessor.Headless() {
				cfg.Logger.Warn("Headless session detected; the keychain may refuse to unlock")
			} else {
				cfg.Logger.Info("OS keychain available")
			}

			results := make([]storeHealth, 0, len(credentials.Stores))
			for _, store := range credentials.Stores {
				health := storeHealth{Name: store.Name, Service: store.Service}

				account := cfg.Settings.Account
				if !store.UseAccount {
					account = ""
				}

				value, ok := accessor.Query(store.Service, account)
				if !ok {
					health.Status = "absent"
					health.Detail = "no data returned"
					results = append(results, health)
					continue
				}

				switch store.Kind {
				case credentials.KindRawKey:
					if strings.HasPrefix(value, "sk-ant-") {
						health.Status = "credential"
						health.Detail = credentials.MaskDefault(value)
					} else {
						health.Status = "data"
						health.Detail = "value does not look like an API key"
					}
				case credentials.KindStructured:
					// Warnings are advisory only; extraction decides the status
					health.Warnings = credentials.InspectPayload(value)
					if key, found := credentials.ExtractKey(value); found {
						health.Status = "credential"
						health.Detail = credentials.MaskDefault(key)
					} else {
						health.Status = "data"
						health.Detail = "payload present, no credential extracted"
					}
				case credentials.KindOpaque:
					health.Status = "data"
					health.Detail = "opaque material, usable only as session token"
				}

				results = append(results, health)
			}

			out := cmd.OutOrStdout()
			printStoreReport(out, results)

			if showMetrics {
				fmt.Fprintln(out)
				if err := dumpMetrics(out); err != nil {
					return fmt.Errorf("failed to dump metrics: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Dump Prometheus counters gathered during the probe")

	return cmd
}

func printStoreReport(out io.Writer, results []storeHealth) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tSERVICE\tSTATUS\tDETAIL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Service, r.Status, r.Detail)
	}
	w.Flush()

	for _, r := range results {
		for _, warning := range r.Warnings {
			fmt.Fprintf(out, "  %s: %s\n", r.Name, warning)
		}
	}
}

func dumpMetrics(out io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "claudekey_") {
			continue
		}
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
