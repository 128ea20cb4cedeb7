// Package keychain provides the access layer to the OS secret store
// (macOS Keychain, Linux Secret Service). The Client interface covers
// raw store operations; Accessor wraps a Client into the total,
// never-failing query surface the credential resolver builds on.
package keychain

// Client abstracts OS keychain operations for testing
type Client interface {
	// Query retrieves a secret from the keychain. Account may be empty
	// on platforms where the service name alone identifies the item.
	Query(service, account string) (string, error)

	// Validate checks if the keychain is accessible
	Validate() error

	// IsAvailable returns true if a keychain is available on this platform
	IsAvailable() bool

	// IsHeadless returns true if running in a headless environment
	IsHeadless() bool
}
