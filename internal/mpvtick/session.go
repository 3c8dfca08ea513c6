package mpvtick

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/mpvtick/internal/dispatch"
	"github.com/lucax88x/mpvtick/internal/loop"
	"github.com/lucax88x/mpvtick/internal/mpv"
	"github.com/lucax88x/mpvtick/internal/overlay"
	"github.com/lucax88x/mpvtick/internal/scheduler"
	"github.com/lucax88x/mpvtick/internal/server"
	"golang.org/x/sync/errgroup"
)

// Player is the part of the mpv client a session drives.
type Player interface {
	overlay.Store
	overlay.Display
	scheduler.KeyBinder
	Listen(ctx context.Context) error
	Close() error
}

var _ Player = (*mpv.Client)(nil)

// Session is everything that lives for one connection to one player.
type Session struct {
	di         *Mpvtick
	player     Player
	loop       *loop.Loop
	dispatcher *dispatch.Dispatcher
	scheduler  *scheduler.Scheduler
	server     *server.FifoServer
}

// Connect dials the configured player and builds a session around it.
func (m *Mpvtick) Connect(ctx context.Context) (*Session, error) {
	client, err := mpv.Connect(ctx, m.Logger, m.Cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("mpvtick: could not connect to player at %s. %w", m.Cfg.Socket, err)
	}

	return m.NewSession(client), nil
}

func (m *Mpvtick) NewSession(player Player) *Session {
	eventLoop := loop.New(m.Logger)
	dispatcher := dispatch.New(m.Logger, eventLoop, overlay.New(m.Logger, player, player))

	return &Session{
		di:         m,
		player:     player,
		loop:       eventLoop,
		dispatcher: dispatcher,
		scheduler:  scheduler.New(m.Logger, m.Clock, scheduler.LoopTimers(eventLoop), player),
		server:     server.NewFifoServer(m.Logger, dispatcher, m.Fifo, m.Cfg.Fifo),
	}
}

func (s *Session) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Arm registers and schedules every enabled modality. Inert modalities are
// not registered, so they cannot be triggered from the fifo either.
// Key bindings need replies from the player, so Listen must already run.
func (s *Session) Arm(ctx context.Context) int {
	armed := 0

	for _, cfg := range s.di.Cfg.Modalities {
		if !cfg.Enabled() {
			s.di.Logger.DebugContext(ctx, "mpvtick: modality inert", slog.String("name", cfg.Name))
			continue
		}

		if _, ok := scheduler.Compute(cfg, s.di.Clock.Now()); !ok {
			s.di.Logger.ErrorContext(
				ctx,
				"mpvtick: interval must be a positive duration, modality left inert",
				slog.String("name", cfg.Name),
				slog.String("interval", cfg.Interval),
			)
			continue
		}

		producer, ok := s.di.Producers[cfg.Name]
		if !ok {
			s.di.Logger.WarnContext(ctx, "mpvtick: no producer for modality", slog.String("name", cfg.Name))
			continue
		}

		s.dispatcher.Register(cfg, producer)

		if s.scheduler.Schedule(ctx, cfg, s.dispatcher.Action(ctx, cfg.Name)) {
			armed++
		}
	}

	return armed
}

// Run serves the session until ctx is cancelled or the player goes away.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.loop.Run(groupCtx)
	})

	group.Go(func() error {
		// the session ends with the player
		defer cancel()
		return s.player.Listen(groupCtx)
	})

	group.Go(func() error {
		armed := s.Arm(groupCtx)
		s.di.Logger.InfoContext(
			groupCtx,
			"mpvtick: modalities armed",
			slog.Int("armed", armed),
			slog.Any("registered", s.dispatcher.Names()),
		)
		return nil
	})

	group.Go(func() error {
		return s.server.Start(groupCtx)
	})

	err := group.Wait()
	s.dispatcher.Wait()

	if closeErr := s.player.Close(); closeErr != nil {
		s.di.Logger.DebugContext(ctx, "mpvtick: close after session", slog.Any("error", closeErr))
	}

	return err
}
