//go:build darwin

package keychain

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

// darwinClient implements Client for the macOS Keychain
type darwinClient struct{}

// newPlatformClient creates the platform-specific keychain client
func newPlatformClient() Client {
	return &darwinClient{}
}

// Query retrieves a secret from the macOS keychain
func (c *darwinClient) Query(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrItemNotFound
		}
		if IsAccessDenied(err) {
			return "", ErrAccessDenied
		}
		return "", err
	}
	return secret, nil
}

// Validate checks if the keychain is accessible
func (c *darwinClient) Validate() error {
	// On macOS the keychain is always present when running on the platform
	return nil
}

// IsAvailable returns true since we're on macOS
func (c *darwinClient) IsAvailable() bool {
	return true
}

// IsHeadless returns true if running in a headless environment
func (c *darwinClient) IsHeadless() bool {
	if os.Getenv("SSH_TTY") != "" {
		return true
	}
	if os.Getenv("CI") != "" {
		return true
	}
	return false
}

var _ Client = (*darwinClient)(nil)
