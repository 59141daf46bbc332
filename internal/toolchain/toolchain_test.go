package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeChecker(lookPathErr error, versionOut string, versionErr error) Checker {
	return Checker{
		LookPath: func(name string) (string, error) {
			if lookPathErr != nil {
				return "", lookPathErr
			}
			return "/usr/bin/" + name, nil
		},
		Version: func(context.Context, string) (string, error) {
			return versionOut, versionErr
		},
	}
}

func TestCheck_OK(t *testing.T) {
	c := fakeChecker(nil, "Python 3.10.2\n", nil)

	err := c.Check(context.Background(), "python3", "3.5.0")
	require.NoError(t, err)
}

func TestCheck_NotOnPath(t *testing.T) {
	c := fakeChecker(errors.New("executable file not found"), "", nil)

	err := c.Check(context.Background(), "python3", "3.5.0")

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "python3", missing.Interpreter)
	assert.Contains(t, missing.Reason, "not found")
}

func TestCheck_VersionTooOld(t *testing.T) {
	c := fakeChecker(nil, "Python 2.7.18\n", nil)

	err := c.Check(context.Background(), "python3", "3.5.0")

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Reason, "older than required")
}

func TestCheck_VersionQueryFails(t *testing.T) {
	c := fakeChecker(nil, "", errors.New("boom"))

	err := c.Check(context.Background(), "python3", "3.5.0")

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{"standard banner", "Python 3.10.2\n", "3.10.2", false},
		{"bare version", "3.12.0", "3.12.0", false},
		{"trailing whitespace", "Python 3.5.3   \n", "3.5.3", false},
		{"empty", "", "", true},
		{"no version in output", "command not understood", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseVersion(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}
