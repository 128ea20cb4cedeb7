package secure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencykit/claudekey/internal/secure"
)

func TestBufferRoundTrip(t *testing.T) {
	buf := secure.NewBufferFromString("sk-ant-secret")
	defer buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, "sk-ant-secret", locked.String())
}

func TestBufferOpenTwice(t *testing.T) {
	buf := secure.NewBuffer([]byte("payload"))
	defer buf.Destroy()

	for i := 0; i < 2; i++ {
		locked, err := buf.Open()
		require.NoError(t, err)
		assert.Equal(t, "payload", locked.String())
		locked.Destroy()
	}
}

func TestBufferDestroyIsIdempotent(t *testing.T) {
	buf := secure.NewBufferFromString("gone")
	buf.Destroy()
	buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Empty(t, locked.Bytes())
}
