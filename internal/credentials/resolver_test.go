package credentials_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencykit/claudekey/internal/credentials"
	"github.com/agencykit/claudekey/internal/keychain"
	"github.com/agencykit/claudekey/internal/logging"
)

const (
	serviceAPIKey      = "Claude Code"
	serviceCredentials = "Claude Code-credentials"
	serviceSafeStorage = "Claude Safe Storage"
)

func newTestResolver(fake *keychain.Fake) *credentials.Resolver {
	logger := logging.New(false, true)
	accessor := keychain.NewAccessorWithClient(fake, logger)
	return credentials.New(accessor, logger)
}

// TestResolveFirstStoreWins verifies that a raw key in the first store
// short-circuits resolution without touching the remaining stores.
func TestResolveFirstStoreWins(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceAPIKey, "", "sk-ant-abc")

	bundle := newTestResolver(fake).Resolve("")

	assert.Equal(t, "sk-ant-abc", bundle.APIKey)
	assert.Empty(t, bundle.MCPOAuthTokens)
	assert.Empty(t, bundle.SessionToken)
	assert.Equal(t, []string{serviceAPIKey}, fake.QueriedServices())
}

// TestResolveSkipsNonMatchingShape verifies that a first-store value
// without the expected prefix is not used as a credential.
func TestResolveSkipsNonMatchingShape(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceAPIKey, "", "not-an-api-key")

	bundle := newTestResolver(fake).Resolve("")

	assert.Empty(t, bundle.APIKey)
	assert.Equal(t,
		[]string{serviceAPIKey, serviceCredentials, serviceSafeStorage},
		fake.QueriedServices())
}

// TestResolveStructuredExtraction covers the JSON document paths of the
// second store.
func TestResolveStructuredExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		payload       string
		wantKey       string
		wantOAuth     int
		wantThirdHit  bool
	}{
		{
			name:         "top_level_api_key",
			payload:      `{"apiKey": "sk-ant-top"}`,
			wantKey:      "sk-ant-top",
			wantThirdHit: false,
		},
		{
			name:         "nested_anthropic_api_key",
			payload:      `{"anthropic": {"apiKey": "sk-ant-xyz123"}, "mcpOAuth": {"svc1": {"accessToken": "tok"}}}`,
			wantKey:      "sk-ant-xyz123",
			wantOAuth:    1,
			wantThirdHit: false,
		},
		{
			name:         "oauth_tokens_only",
			payload:      `{"mcpOAuth": {"svc1": {"accessToken": "tok"}, "svc2": {"accessToken": "tok2"}}}`,
			wantKey:      "",
			wantOAuth:    2,
			wantThirdHit: true,
		},
		{
			name:         "malformed_json",
			payload:      `{not json`,
			wantKey:      "",
			wantOAuth:    0,
			wantThirdHit: true,
		},
		{
			name:         "json_but_not_object",
			payload:      `["sk-ant-in-array"]`,
			wantKey:      "",
			wantOAuth:    0,
			wantThirdHit: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := keychain.NewFake()
			fake.SetSecret(serviceCredentials, "", tt.payload)

			bundle := newTestResolver(fake).Resolve("")

			assert.Equal(t, tt.wantKey, bundle.APIKey)
			assert.Len(t, bundle.MCPOAuthTokens, tt.wantOAuth)

			services := fake.QueriedServices()
			if tt.wantThirdHit {
				assert.Contains(t, services, serviceSafeStorage)
			} else {
				assert.NotContains(t, services, serviceSafeStorage)
			}
		})
	}
}

// TestResolveConcreteOAuthScenario pins the exact document shape Claude
// Code writes: OAuth tokens plus a nested anthropic key.
func TestResolveConcreteOAuthScenario(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceCredentials, "",
		`{"mcpOAuth": {"svc1": {"accessToken": "tok"}}, "anthropic": {"apiKey": "sk-ant-xyz123"}}`)

	bundle := newTestResolver(fake).Resolve("")

	require.Equal(t, "sk-ant-xyz123", bundle.APIKey)
	require.Len(t, bundle.MCPOAuthTokens, 1)
	assert.Contains(t, bundle.MCPOAuthTokens, "svc1")
	assert.NotContains(t, fake.QueriedServices(), serviceSafeStorage)
}

// TestResolveSessionTokenFallback verifies the lowest-priority store
// only ever contributes an opaque session token.
func TestResolveSessionTokenFallback(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceSafeStorage, "", "opaque-encrypted-blob")

	bundle := newTestResolver(fake).Resolve("")

	assert.Empty(t, bundle.APIKey)
	assert.Equal(t, "opaque-encrypted-blob", bundle.SessionToken)
}

// TestResolveAllStoresEmpty verifies an all-absent walk yields an empty
// bundle and no error of any kind.
func TestResolveAllStoresEmpty(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()

	bundle := newTestResolver(fake).Resolve("")

	assert.Empty(t, bundle.APIKey)
	assert.Empty(t, bundle.MCPOAuthTokens)
	assert.Empty(t, bundle.SessionToken)
	assert.False(t, bundle.HasAPIKey())
	assert.Equal(t, 3, fake.QueryCount())
}

// TestResolveStoreFailureIsNotFatal verifies access-layer failures are
// swallowed and resolution simply comes back empty.
func TestResolveStoreFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.QueryErr = keychain.ErrAccessDenied

	bundle := newTestResolver(fake).Resolve("")

	assert.False(t, bundle.HasAPIKey())
	assert.Equal(t, 3, fake.QueryCount())
}

// TestResolveAccountRouting verifies the account name is passed to the
// stores that take one and omitted for safe storage.
func TestResolveAccountRouting(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceAPIKey, "alice", "sk-ant-alice")

	bundle := newTestResolver(fake).Resolve("alice")

	assert.Equal(t, "sk-ant-alice", bundle.APIKey)
	require.Len(t, fake.Queries, 1)
	assert.Equal(t, "alice", fake.Queries[0].Account)
}

func TestResolveSafeStorageIgnoresAccount(t *testing.T) {
	t.Parallel()

	fake := keychain.NewFake()
	fake.SetSecret(serviceSafeStorage, "", "blob")

	bundle := newTestResolver(fake).Resolve("alice")

	assert.Equal(t, "blob", bundle.SessionToken)
	last := fake.Queries[len(fake.Queries)-1]
	assert.Equal(t, serviceSafeStorage, last.Service)
	assert.Equal(t, "", last.Account)
}

// TestAPIKeyEnvironmentOverride verifies the override wins without a
// single store query.
func TestAPIKeyEnvironmentOverride(t *testing.T) {
	t.Setenv(credentials.EnvAPIKey, "sk-ant-from-env")

	fake := keychain.NewFake()
	fake.SetSecret(serviceAPIKey, "", "sk-ant-from-keychain")

	key, ok := newTestResolver(fake).APIKey()

	require.True(t, ok)
	assert.Equal(t, "sk-ant-from-env", key)
	assert.Zero(t, fake.QueryCount(), "override must not trigger store queries")
}

func TestAPIKeyFallsBackToKeychain(t *testing.T) {
	t.Setenv(credentials.EnvAPIKey, "")

	fake := keychain.NewFake()
	fake.SetSecret(serviceAPIKey, "", "sk-ant-from-keychain")

	key, ok := newTestResolver(fake).APIKey()

	require.True(t, ok)
	assert.Equal(t, "sk-ant-from-keychain", key)
}

func TestAPIKeyAbsentEverywhere(t *testing.T) {
	t.Setenv(credentials.EnvAPIKey, "")

	fake := keychain.NewFake()

	key, ok := newTestResolver(fake).APIKey()

	assert.False(t, ok)
	assert.Empty(t, key)
}

// TestEnvironmentRoundTrip verifies Environment agrees with APIKey under
// the same inputs, and is empty (not a key mapped to "") on failure.
func TestEnvironmentRoundTrip(t *testing.T) {
	t.Setenv(credentials.EnvAPIKey, "")

	tests := []struct {
		name    string
		setup   func(*keychain.Fake)
		wantEnv map[string]string
	}{
		{
			name: "resolved_from_keychain",
			setup: func(f *keychain.Fake) {
				f.SetSecret(serviceAPIKey, "", "sk-ant-abc")
			},
			wantEnv: map[string]string{credentials.EnvAPIKey: "sk-ant-abc"},
		},
		{
			name:    "unresolved_is_empty_map",
			setup:   func(f *keychain.Fake) {},
			wantEnv: map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fake := keychain.NewFake()
			tt.setup(fake)

			resolver := newTestResolver(fake)
			env := resolver.Environment("")

			assert.Equal(t, tt.wantEnv, env)

			key, ok := newTestResolver(fakeCopy(fake)).APIKey()
			if ok {
				assert.Equal(t, key, env[credentials.EnvAPIKey])
			} else {
				assert.Empty(t, env)
			}
		})
	}
}

// fakeCopy clones a fake's stored secrets into a fresh fake so a second
// resolution starts with a clean query log.
func fakeCopy(f *keychain.Fake) *keychain.Fake {
	clone := keychain.NewFake()
	for service, accounts := range f.Secrets {
		for account, value := range accounts {
			clone.SetSecret(service, account, value)
		}
	}
	return clone
}

func TestSourcesTried(t *testing.T) {
	t.Parallel()

	sources := credentials.SourcesTried()

	require.Len(t, sources, 4)
	assert.Contains(t, sources[0], credentials.EnvAPIKey)
	assert.Contains(t, sources[1], serviceAPIKey)
	assert.Contains(t, sources[2], serviceCredentials)
	assert.Contains(t, sources[3], serviceSafeStorage)
}

func TestStoreServicesOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{serviceAPIKey, serviceCredentials, serviceSafeStorage},
		credentials.StoreServices())
}
