package credentials

// StoreKind selects the interpretation rule for a store's payload
type StoreKind int

const (
	// KindRawKey means the payload is a direct credential candidate,
	// accepted when it carries the expected key prefix.
	KindRawKey StoreKind = iota

	// KindStructured means the payload is a JSON document subject to
	// the tolerant extraction rules.
	KindStructured

	// KindOpaque means the payload is encrypted or otherwise unusable
	// as a credential; it is retained as a session token.
	KindOpaque
)

// Store describes one keychain service the resolver queries
type Store struct {
	// Name is the logical name used in diagnostics and metrics
	Name string

	// Service is the keychain service identifier
	Service string

	// UseAccount controls whether the caller-supplied account name is
	// passed to the store query
	UseAccount bool

	// Kind selects how the payload is interpreted
	Kind StoreKind
}

// apiKeyPrefix is the shape a directly-usable Anthropic key must have
const apiKeyPrefix = "sk-ant-"

// Stores is the fixed priority order of keychain services. Claude Code
// keeps the actual API key under "Claude Code"; "Claude Code-credentials"
// holds the MCP OAuth token document; "Claude Safe Storage" holds
// encryption material that can only serve as an opaque session token.
// The slice is static configuration and must not be mutated.
var Stores = []Store{
	{Name: "api-key", Service: "Claude Code", UseAccount: true, Kind: KindRawKey},
	{Name: "oauth-credentials", Service: "Claude Code-credentials", UseAccount: true, Kind: KindStructured},
	{Name: "safe-storage", Service: "Claude Safe Storage", UseAccount: false, Kind: KindOpaque},
}

// StoreServices returns the keychain service identifiers in priority
// order, for diagnostics and error messages.
func StoreServices() []string {
	services := make([]string, 0, len(Stores))
	for _, st := range Stores {
		services = append(services, st.Service)
	}
	return services
}
