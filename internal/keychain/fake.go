package keychain

// Fake is a test double for Client. It records every query so tests can
// assert on which services were touched and in what order.
type Fake struct {
	// Secrets is a map of service -> account -> value
	Secrets map[string]map[string]string

	// Available controls whether the keychain reports as available
	Available bool

	// Headless controls whether the environment is reported as headless
	Headless bool

	// ValidateErr is returned by Validate() if set
	ValidateErr error

	// ValidateCalls counts Validate invocations
	ValidateCalls int

	// QueryErr is returned by Query() if set (overrides Secrets lookup)
	QueryErr error

	// Queries records every Query call in order
	Queries []QueryRecord
}

// QueryRecord captures the arguments of one Query call
type QueryRecord struct {
	Service string
	Account string
}

// NewFake creates a fake keychain client with defaults
func NewFake() *Fake {
	return &Fake{
		Secrets:   make(map[string]map[string]string),
		Available: true,
		Headless:  false,
	}
}

// SetSecret adds a secret to the fake keychain
func (f *Fake) SetSecret(service, account, value string) {
	if f.Secrets == nil {
		f.Secrets = make(map[string]map[string]string)
	}
	if f.Secrets[service] == nil {
		f.Secrets[service] = make(map[string]string)
	}
	f.Secrets[service][account] = value
}

// QueryCount returns the number of Query calls made so far
func (f *Fake) QueryCount() int {
	return len(f.Queries)
}

// QueriedServices returns the service names queried, in call order
func (f *Fake) QueriedServices() []string {
	services := make([]string, 0, len(f.Queries))
	for _, q := range f.Queries {
		services = append(services, q.Service)
	}
	return services
}

// Query retrieves a secret from the fake keychain
func (f *Fake) Query(service, account string) (string, error) {
	f.Queries = append(f.Queries, QueryRecord{Service: service, Account: account})

	if f.QueryErr != nil {
		return "", f.QueryErr
	}

	if accounts, ok := f.Secrets[service]; ok {
		if value, ok := accounts[account]; ok {
			return value, nil
		}
	}
	return "", ErrItemNotFound
}

// Validate checks if the fake keychain is accessible
func (f *Fake) Validate() error {
	f.ValidateCalls++
	return f.ValidateErr
}

// IsAvailable returns whether the fake keychain is available
func (f *Fake) IsAvailable() bool {
	return f.Available
}

// IsHeadless returns whether the fake reports a headless environment
func (f *Fake) IsHeadless() bool {
	return f.Headless
}

var _ Client = (*Fake)(nil)
