// Package netcheck performs the bounded-time reachability probe against the
// dependent service endpoint.
package netcheck

import (
	"fmt"
	"net"
	"time"
)

// Prober checks whether endpoint accepts connections within timeout.
type Prober func(endpoint string, timeout time.Duration) error

// Probe dials endpoint over TCP with a hard deadline. A timeout counts as
// failure; there is no retry.
func Probe(endpoint string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", endpoint, timeout)
	if err != nil {
		return fmt.Errorf("endpoint %s is unreachable: %w", endpoint, err)
	}
	_ = conn.Close()
	return nil
}
