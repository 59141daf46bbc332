package netcheck

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Reachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	err = Probe(listener.Addr().String(), time.Second)
	assert.NoError(t, err)
}

func TestProbe_Unreachable(t *testing.T) {
	// Grab a free port, then close the listener so nothing accepts.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := listener.Addr().String()
	require.NoError(t, listener.Close())

	err = Probe(endpoint, 500*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), endpoint)
}

func TestProbe_MalformedEndpoint(t *testing.T) {
	err := Probe("not an endpoint", 500*time.Millisecond)
	require.Error(t, err)
}
