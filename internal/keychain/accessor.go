package keychain

import (
	"strings"

	"github.com/agencykit/claudekey/internal/logging"
	"github.com/agencykit/claudekey/internal/metrics"
)

// Accessor is the total query surface over a keychain Client. Every
// access-layer failure (store missing, permission denied, headless
// session) is mapped to "not found" so the caller never has to handle
// an error from a store that is simply absent on the host. Failures are
// visible only as debug log lines.
type Accessor struct {
	client Client
	logger *logging.Logger
}

// NewAccessor creates an accessor over the platform keychain
func NewAccessor(logger *logging.Logger) *Accessor {
	return &Accessor{
		client: newPlatformClient(),
		logger: logger,
	}
}

// NewAccessorWithClient creates an accessor with a custom client.
// This is primarily for testing, allowing the keychain to be faked.
func NewAccessorWithClient(client Client, logger *logging.Logger) *Accessor {
	return &Accessor{
		client: client,
		logger: logger,
	}
}

// Query retrieves a secret for (service, account). The boolean result is
// false for missing items and for any access-layer failure. Returned
// values are trimmed of surrounding whitespace; a value that is empty
// after trimming counts as not found.
func (a *Accessor) Query(service, account string) (string, bool) {
	value, err := a.client.Query(service, account)
	if err != nil {
		if IsNotFound(err) {
			a.logger.Debug("No credential found for service: %s", service)
		} else {
			a.logger.Debug("Error accessing keychain for %s: %v", service, err)
		}
		metrics.RecordStoreQuery(service, false)
		return "", false
	}

	value = strings.TrimSpace(value)
	if value == "" {
		a.logger.Debug("Empty credential stored for service: %s", service)
		metrics.RecordStoreQuery(service, false)
		return "", false
	}

	a.logger.Debug("Successfully retrieved credential from service: %s", service)
	metrics.RecordStoreQuery(service, true)
	return value, true
}

// Available reports whether a keychain exists on this platform
func (a *Accessor) Available() bool {
	return a.client.IsAvailable()
}

// Headless reports whether the session lacks the GUI some keychains
// need to prompt for access
func (a *Accessor) Headless() bool {
	return a.client.IsHeadless()
}

// Validate checks that the underlying store is reachable. Unlike Query
// this surfaces the error, for use by diagnostics only.
func (a *Accessor) Validate() error {
	if !a.client.IsAvailable() {
		return ErrUnsupportedPlatform
	}
	if err := a.client.Validate(); err != nil {
		return &StoreError{Op: "validate", Err: err}
	}
	return nil
}
