package pip

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreeze(t *testing.T) {
	out := `
requests==2.31.0
flask==3.0.2
-e git+https://git.example.org/widget-lib.git#egg=widget-lib
# comment line pip never emits, skipped anyway
malformed-line
`

	set := ParseFreeze(out)

	assert.True(t, set.Has("requests"))
	assert.True(t, set.Has("flask"))
	assert.False(t, set.Has("widget-lib"), "editable installs are not registry snapshot entries")
	assert.False(t, set.Has("malformed-line"))
	assert.Len(t, set, 2)
}

func TestParseFreeze_Empty(t *testing.T) {
	assert.Empty(t, ParseFreeze(""))
}

// recordedCall captures one command invocation made by the client.
type recordedCall struct {
	name string
	args []string
}

func newRecordingClient(output string, err error) (*Client, *[]recordedCall) {
	calls := &[]recordedCall{}
	c := New("python3", "https://git.example.org/deps/")
	c.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return []byte(output), err
	}
	return c, calls
}

func TestClient_Installed(t *testing.T) {
	c, calls := newRecordingClient("requests==2.31.0\n", nil)

	set, err := c.Installed(context.Background())
	require.NoError(t, err)

	assert.True(t, set.Has("requests"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "python3", (*calls)[0].name)
	assert.Equal(t, []string{"-m", "pip", "list", "--format=freeze"}, (*calls)[0].args)
}

func TestClient_Fetch(t *testing.T) {
	c, calls := newRecordingClient("", nil)

	err := c.Fetch(context.Background(), "widget-lib", "../widget-lib")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, "git", (*calls)[0].name)
	// The trailing slash on the configured base must not double up.
	assert.Equal(t, []string{"clone", "https://git.example.org/deps/widget-lib.git", "../widget-lib"}, (*calls)[0].args)
}

func TestClient_InstallName(t *testing.T) {
	c, calls := newRecordingClient("", nil)

	require.NoError(t, c.InstallName(context.Background(), "requests"))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"-m", "pip", "install", "requests"}, (*calls)[0].args)
}

func TestClient_InstallPath(t *testing.T) {
	c, calls := newRecordingClient("", nil)

	require.NoError(t, c.InstallPath(context.Background(), "../widget-lib"))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"-m", "pip", "install", "../widget-lib"}, (*calls)[0].args)
}

func TestClient_InstallFailureIncludesOutput(t *testing.T) {
	c, _ := newRecordingClient("ERROR: no matching distribution", errors.New("exit status 1"))

	err := c.InstallName(context.Background(), "no-such-package")

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no matching distribution"))
}
