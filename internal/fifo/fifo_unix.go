//go:build !windows

package fifo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
)

func (f *Reader) makeSureFifoExists(path string) error {
	stat, err := os.Stat(path)
	if err == nil {
		if stat.Mode()&os.ModeNamedPipe != 0 {
			return nil
		}
		f.logger.WarnContext(
			context.Background(),
			"fifo: path exists but is a regular file, not a named pipe. Removing it to create a FIFO.",
			slog.String("path", path),
		)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("fifo: could not remove existing file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("fifo: could not stat file: %w", err)
	}

	if err := syscall.Mkfifo(path, 0o640); err != nil {
		return fmt.Errorf("fifo: could not create fifo file: %w", err)
	}
	f.logger.InfoContext(context.Background(), "fifo: successfully created fifo file", slog.String("path", path))
	return nil
}

// The reader keeps a write end open itself, so the pipe never reports EOF
// between writers.
func openForReading(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, os.ModeNamedPipe)
}

func openForWriting(path string) (*os.File, error) {
	pipe, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeNamedPipe)
	if err != nil {
		if errors.Is(err, syscall.ENXIO) || os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotListening, path)
		}
		return nil, fmt.Errorf("fifo: could not open for writing: %w", err)
	}
	return pipe, nil
}
