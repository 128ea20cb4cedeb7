package credentials

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/agencykit/claudekey/internal/keychain"
	"github.com/agencykit/claudekey/internal/logging"
	"github.com/agencykit/claudekey/internal/metrics"
)

// EnvAPIKey is the environment variable that overrides every store.
// When set and non-empty it wins without a single keychain query, so an
// operator can always force a specific credential.
const EnvAPIKey = "ANTHROPIC_API_KEY"

// Resolver orchestrates credential discovery across the fixed store
// list. It holds no mutable state between calls; concurrent use needs
// no locking.
type Resolver struct {
	accessor *keychain.Accessor
	logger   *logging.Logger
}

// New creates a resolver over the given accessor
func New(accessor *keychain.Accessor, logger *logging.Logger) *Resolver {
	return &Resolver{
		accessor: accessor,
		logger:   logger,
	}
}

// Resolve queries the stores in priority order and returns a fresh
// Bundle. The first store whose payload yields a usable credential
// short-circuits the walk; auxiliary data found along the way is kept.
// Resolve never fails; every store-level problem degrades to absence.
func (r *Resolver) Resolve(account string) Bundle {
	trace := uuid.NewString()[:8]

	var bundle Bundle
	for _, store := range Stores {
		acct := account
		if !store.UseAccount {
			acct = ""
		}

		value, ok := r.accessor.Query(store.Service, acct)
		r.logger.Debug("[%s] store %s: data=%t", trace, store.Name, ok)
		if !ok {
			continue
		}

		switch store.Kind {
		case KindRawKey:
			if strings.HasPrefix(value, apiKeyPrefix) {
				r.logger.Debug("[%s] store %s: credential %s", trace, store.Name, MaskDefault(value))
				bundle.APIKey = value
				return bundle
			}
			r.logger.Debug("[%s] store %s: value does not look like an API key, skipping", trace, store.Name)

		case KindStructured:
			doc, parsed := parseDocument(value)
			if !parsed {
				r.logger.Debug("[%s] store %s: could not parse payload as JSON", trace, store.Name)
				metrics.RecordExtraction(store.Name, "parse_error")
				continue
			}
			if tokens := oauthTokens(doc); tokens != nil {
				r.logger.Debug("[%s] store %s: found MCP OAuth tokens for %d services", trace, store.Name, len(tokens))
				bundle.MCPOAuthTokens = tokens
			}
			if key, found := extractAPIKey(doc); found {
				r.logger.Debug("[%s] store %s: extracted credential %s", trace, store.Name, MaskDefault(key))
				metrics.RecordExtraction(store.Name, "matched")
				bundle.APIKey = key
				return bundle
			}
			r.logger.Debug("[%s] store %s: no credential field in payload", trace, store.Name)
			metrics.RecordExtraction(store.Name, "unmatched")

		case KindOpaque:
			if bundle.APIKey == "" {
				// Opaque material has no prefix worth masking, so the
				// value is never shown at all
				r.logger.Debug("[%s] store %s: retaining %s as session token", trace, store.Name, logging.Secret(value))
				bundle.SessionToken = value
			}
		}
	}

	return bundle
}

// APIKey resolves the usable API credential. Precedence is fixed and
// total: the ANTHROPIC_API_KEY environment variable, read at call time,
// beats everything; otherwise the keychain stores are walked via
// Resolve. The boolean is false when no source produced a credential;
// that is not an error, and callers decide whether it is fatal.
func (r *Resolver) APIKey() (string, bool) {
	return r.APIKeyFor("")
}

// APIKeyFor is APIKey with an explicit keychain account name
func (r *Resolver) APIKeyFor(account string) (string, bool) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		r.logger.Debug("Using %s from environment", EnvAPIKey)
		metrics.RecordResolution("environment")
		return key, true
	}

	bundle := r.Resolve(account)
	if bundle.HasAPIKey() {
		r.logger.Debug("Retrieved API key from keychain")
		metrics.RecordResolution("keychain")
		return bundle.APIKey, true
	}

	r.logger.Debug("No API key found in environment or keychain")
	metrics.RecordResolution("none")
	return "", false
}

// Environment materializes the resolved credential as an environment
// mapping suitable for a child process. The mapping is returned, never
// applied; resolution must not mutate ambient process state. When no
// credential resolves the mapping is empty.
func (r *Resolver) Environment(account string) map[string]string {
	env := make(map[string]string)

	if key, ok := r.APIKeyFor(account); ok {
		env[EnvAPIKey] = key
	}

	return env
}

// SourcesTried lists every source the resolver consults, in precedence
// order, for callers that need to name them in an error.
func SourcesTried() []string {
	sources := []string{EnvAPIKey + " (environment)"}
	for _, service := range StoreServices() {
		sources = append(sources, "keychain service \""+service+"\"")
	}
	return sources
}
