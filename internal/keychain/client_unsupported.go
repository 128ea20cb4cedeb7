//go:build !darwin && !linux

package keychain

// unsupportedClient is a stub for platforms without a supported keychain
type unsupportedClient struct{}

// newPlatformClient creates a stub client for unsupported platforms
func newPlatformClient() Client {
	return &unsupportedClient{}
}

func (c *unsupportedClient) Query(service, account string) (string, error) {
	return "", ErrUnsupportedPlatform
}

func (c *unsupportedClient) Validate() error {
	return ErrUnsupportedPlatform
}

func (c *unsupportedClient) IsAvailable() bool {
	return false
}

func (c *unsupportedClient) IsHeadless() bool {
	return false
}

var _ Client = (*unsupportedClient)(nil)
