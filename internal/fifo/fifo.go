package fifo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

const Separator = '¬'

var ErrNotListening = errors.New("fifo: nobody is listening")

type Reader struct {
	logger *slog.Logger
}

func NewFifoReader(logger *slog.Logger) *Reader {
	return &Reader{
		logger,
	}
}

func (f *Reader) Start(path string) error {
	if err := f.makeSureFifoExists(path); err != nil {
		return fmt.Errorf("fifo: error creating file: %w", err)
	}
	return nil
}

// Listen sends every separator terminated message written to path into ch
// until ctx is cancelled. The fifo is removed on return.
func (f *Reader) Listen(
	ctx context.Context,
	path string,
	ch chan<- string,
) error {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			f.logger.ErrorContext(ctx, "fifo: could not remove fifo", slog.Any("error", err))
		}
	}()

	maxRetries := 3
	retryDelay := time.Second * 2

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := f.listenAttempt(ctx, path, ch)

		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}

		f.logger.ErrorContext(ctx, "fifo: listen attempt failed",
			slog.Any("error", err),
			slog.Int("attempt", attempt),
			slog.Int("maxRetries", maxRetries))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
		}

		if err := f.makeSureFifoExists(path); err != nil {
			f.logger.ErrorContext(ctx, "fifo: failed to recreate FIFO", slog.Any("error", err))
		}
	}

	return fmt.Errorf("fifo: failed to establish stable connection after %d attempts", maxRetries)
}

func (f *Reader) listenAttempt(
	ctx context.Context,
	path string,
	ch chan<- string,
) error {
	pipe, err := openForReading(path)
	if err != nil {
		return fmt.Errorf("fifo: error opening for reading: %w", err)
	}

	// closing the pipe unblocks the pending read
	stop := context.AfterFunc(ctx, func() {
		_ = pipe.Close()
	})
	defer func() {
		if stop() {
			_ = pipe.Close()
		}
	}()

	reader := bufio.NewReader(pipe)

	for {
		line, readErr := reader.ReadString(Separator)

		if msg := clean(line); msg != "" {
			select {
			case ch <- msg:
			case <-ctx.Done():
				return ctx.Err()
			default:
				f.logger.WarnContext(ctx, "fifo: output channel full, dropping message", slog.String("message", msg))
			}
		}

		if readErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(readErr, io.EOF) {
				return readErr
			}
			return fmt.Errorf("fifo: read error: %w", readErr)
		}
	}
}

func clean(line string) string {
	line = strings.TrimRight(line, string(Separator))
	return strings.TrimSpace(line)
}

// Send writes one message to a listening fifo.
func Send(path string, msg string) error {
	if !strings.HasSuffix(msg, string(Separator)) {
		msg += string(Separator)
	}

	pipe, err := openForWriting(path)
	if err != nil {
		return err
	}
	defer pipe.Close()

	if _, err := pipe.WriteString(msg); err != nil {
		return fmt.Errorf("fifo: could not write message: %w", err)
	}

	return nil
}
