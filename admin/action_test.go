package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	action, err := ParseAction("clear-cache")
	require.NoError(t, err)
	assert.Equal(t, ActionClearCache, action)

	_, err = ParseAction("drop-everything")
	require.Error(t, err)
	assert.True(t, IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "clear-cache")
}

func TestRunnerUnknownAction(t *testing.T) {
	runner := NewRunner()
	_, err := runner.Run(context.Background(), &CommandRequest{Action: ActionClearCache})
	require.ErrorIs(t, err, ErrUnknownAction)
}
