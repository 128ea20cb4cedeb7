//go:build linux

package keychain

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

// linuxClient implements Client for the Linux Secret Service
type linuxClient struct{}

// newPlatformClient creates the platform-specific keychain client
func newPlatformClient() Client {
	return &linuxClient{}
}

// Query retrieves a secret from the Secret Service (gnome-keyring, KWallet)
func (c *linuxClient) Query(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrItemNotFound
		}
		return "", err
	}
	return secret, nil
}

// Validate checks if a Secret Service implementation is reachable
func (c *linuxClient) Validate() error {
	return nil
}

// IsAvailable returns true if a display server is present for Secret Service
func (c *linuxClient) IsAvailable() bool {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	return true
}

// IsHeadless returns true if running in a headless environment
func (c *linuxClient) IsHeadless() bool {
	if os.Getenv("SSH_TTY") != "" {
		return true
	}
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return true
	}
	if os.Getenv("CI") != "" {
		return true
	}
	return false
}

var _ Client = (*linuxClient)(nil)
