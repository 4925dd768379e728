// pkg/credentials/credentials_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test credential resolution order and prompt-once behaviour

package credentials

import (
	"context"
	"testing"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/steamcmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	user, pass string
	err        error
	calls      int
	prefill    string
}

func (f *fakePrompter) PromptCredentials(_ context.Context, username string) (string, string, error) {
	f.calls++
	f.prefill = username
	return f.user, f.pass, f.err
}

func TestGetUsesConfiguredCredentials(t *testing.T) {
	prompter := &fakePrompter{}
	src := New(config.Steam{Username: "operator", Password: "hunter2"}, prompter)

	creds, err := src.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, steamcmd.Credentials{Username: "operator", Password: "hunter2"}, creds)
	assert.Zero(t, prompter.calls)
}

func TestGetPromptsOnce(t *testing.T) {
	prompter := &fakePrompter{user: "operator", pass: "hunter2"}
	src := New(config.Steam{Username: "operator"}, prompter)

	first, err := src.Get(context.Background())
	require.NoError(t, err)
	second, err := src.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, prompter.calls)
	assert.Equal(t, "operator", prompter.prefill)
}

func TestGetWithoutPrompter(t *testing.T) {
	src := New(config.Steam{Password: "hunter2"}, nil)

	_, err := src.Get(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCredentials))
	assert.Contains(t, err.Error(), config.EnvSteamUsername)
}

func TestGetPromptNotATerminal(t *testing.T) {
	prompter := &fakePrompter{err: errors.New(errors.ErrNotATerminal, "stdin is not a terminal")}
	src := New(config.Steam{}, prompter)

	_, err := src.Get(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCredentials))
	assert.Contains(t, err.Error(), "stdin is not a terminal")
}

func TestGetPromptCancelled(t *testing.T) {
	prompter := &fakePrompter{err: errors.New(errors.ErrCancelled, "aborted")}
	src := New(config.Steam{}, prompter)

	_, err := src.Get(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestGetPromptEmptyAnswer(t *testing.T) {
	prompter := &fakePrompter{user: "operator"}
	src := New(config.Steam{}, prompter)

	_, err := src.Get(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCredentials))
}
