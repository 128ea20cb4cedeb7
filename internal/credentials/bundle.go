// Package credentials resolves an Anthropic API credential from the
// process environment and the OS keychain services that Claude Code
// writes to. Resolution is read-only, first-match-wins over a fixed
// store order, and never fails: absence is the only negative outcome.
package credentials

// Bundle aggregates everything one resolution pass discovered. A fresh
// Bundle is built per call and owned by the caller; nothing is cached.
type Bundle struct {
	// APIKey is the resolved primary credential. Once set during
	// resolution, no further stores are queried.
	APIKey string

	// MCPOAuthTokens holds OAuth token sets for MCP servers found in the
	// structured credentials payload, keyed by server name. Best-effort:
	// may be partial or nil even after a successful resolution.
	MCPOAuthTokens map[string]any

	// SessionToken is opaque material from the lowest-priority store,
	// retained only when no APIKey could be extracted.
	SessionToken string
}

// HasAPIKey reports whether a primary credential was resolved
func (b Bundle) HasAPIKey() bool {
	return b.APIKey != ""
}
