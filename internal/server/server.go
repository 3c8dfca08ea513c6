package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/mpvtick/cmd/cli/config/args"
	"github.com/lucax88x/mpvtick/internal/fifo"
)

// Dispatcher is what the fifo requests are forwarded to.
type Dispatcher interface {
	Trigger(ctx context.Context, name string) error
	Restore(ctx context.Context, name string) error
}

type FifoServer struct {
	logger     *slog.Logger
	dispatcher Dispatcher
	fifo       *fifo.Reader
	path       string
}

func NewFifoServer(
	logger *slog.Logger,
	dispatcher Dispatcher,
	fifo *fifo.Reader,
	path string,
) *FifoServer {
	return &FifoServer{
		logger,
		dispatcher,
		fifo,
		path,
	}
}

// Start serves fifo requests until ctx is cancelled. A fifo that cannot be
// created only disables external triggers; key bindings and timers keep
// working, so it is logged rather than returned.
func (f FifoServer) Start(ctx context.Context) error {
	if err := f.fifo.Start(f.path); err != nil {
		f.logger.ErrorContext(ctx, "server: could not start fifo, external triggers disabled", slog.Any("error", err))
		<-ctx.Done()
		return nil
	}

	f.logger.InfoContext(ctx, "server: listening", slog.String("path", f.path))

	ch := make(chan string, 100)

	listenerDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.logger.ErrorContext(ctx, "server: recovered from panic in FIFO listener", slog.Any("panic", r))
				listenerDone <- nil
			}
		}()

		listenerDone <- f.fifo.Listen(ctx, f.path, ch)
	}()

	for {
		select {
		case <-ctx.Done():
			return <-listenerDone
		case err := <-listenerDone:
			if err != nil {
				f.logger.ErrorContext(ctx, "server: FIFO listener error", slog.Any("error", err))
			}
			<-ctx.Done()
			return nil
		case msg := <-ch:
			if err := f.Handle(ctx, msg); err != nil {
				f.logger.ErrorContext(ctx, "server: message handling failed",
					slog.String("message", msg),
					slog.Any("error", err))
			}
		}
	}
}

// Handle decodes one fifo message and forwards it.
func (f FifoServer) Handle(ctx context.Context, msg string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.ErrorContext(ctx, "server: recovered from panic in Handle",
				slog.Any("panic", r),
				slog.String("message", msg))
			err = nil
		}
	}()

	in, err := args.FromEvent(msg)
	if err != nil {
		return err
	}

	f.logger.InfoContext(ctx, "server: processing request",
		slog.String("name", in.Name),
		slog.String("event", in.Event))

	switch in.Event {
	case args.Trigger:
		return f.dispatcher.Trigger(ctx, in.Name)
	case args.Restore:
		return f.dispatcher.Restore(ctx, in.Name)
	default:
		return fmt.Errorf("server: unhandled event %q", in.Event)
	}
}
