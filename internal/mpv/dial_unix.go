//go:build !windows

package mpv

import (
	"context"
	"fmt"
	"net"
)

func dial(ctx context.Context, path string) (net.Conn, error) {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("mpv: could not connect to unix socket %s. %w", path, err)
	}

	return conn, nil
}
