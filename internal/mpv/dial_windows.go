//go:build windows

package mpv

import (
	"context"
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// mpv on windows serves IPC on a named pipe such as \\.\pipe\mpvsocket.
func dial(ctx context.Context, path string) (net.Conn, error) {
	conn, err := winio.DialPipeContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("mpv: could not connect to named pipe %s. %w", path, err)
	}

	return conn, nil
}
