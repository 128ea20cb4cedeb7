package execenv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ckerrors "github.com/agencykit/claudekey/internal/errors"
	"github.com/agencykit/claudekey/internal/execenv"
	"github.com/agencykit/claudekey/internal/logging"
)

func TestExecRejectsEmptyCommand(t *testing.T) {
	t.Parallel()

	e := execenv.New(logging.New(false, true))
	err := e.Exec(context.Background(), execenv.Options{})

	require.Error(t, err)
	var userErr ckerrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, err.Error(), "No command specified")
}

func TestExecRejectsUnknownBinary(t *testing.T) {
	t.Parallel()

	e := execenv.New(logging.New(false, true))
	err := e.Exec(context.Background(), execenv.Options{
		Command: []string{"definitely-not-a-real-binary-xyz"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExecRunsCommandWithInjectedEnv(t *testing.T) {
	t.Parallel()

	e := execenv.New(logging.New(false, true))
	err := e.Exec(context.Background(), execenv.Options{
		Command:     []string{"true"},
		Environment: map[string]string{"ANTHROPIC_API_KEY": "sk-ant-abc"},
	})

	assert.NoError(t, err)
}
