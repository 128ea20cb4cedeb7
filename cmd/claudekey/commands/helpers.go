package commands

import (
	"github.com/agencykit/claudekey/internal/config"
	"github.com/agencykit/claudekey/internal/credentials"
	"github.com/agencykit/claudekey/internal/keychain"
)

// accessorFactory builds the keychain accessor; tests swap it to avoid
// touching the real OS keychain.
var accessorFactory = func(cfg *config.Config) *keychain.Accessor {
	return keychain.NewAccessor(cfg.Logger)
}

// newResolver builds the credential resolver for a command invocation
func newResolver(cfg *config.Config) *credentials.Resolver {
	return credentials.New(accessorFactory(cfg), cfg.Logger)
}
