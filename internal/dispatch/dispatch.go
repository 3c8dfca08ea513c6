// Package dispatch connects modality producers to the render path. Producers
// may block on subprocesses, so they run on their own goroutine; the text they
// return is posted back to the loop where rendering stays serialized.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/lucax88x/mpvtick/internal/overlay"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownModality = errors.New("dispatch: unknown modality")
	ErrNoSnapshot      = errors.New("dispatch: nothing to restore")
	ErrLoopStopped     = errors.New("dispatch: loop stopped")
)

// Poster runs fn on the render goroutine.
type Poster interface {
	Post(fn func()) bool
}

type Renderer interface {
	Render(ctx context.Context, message string, cfg modality.Config) (overlay.Snapshot, error)
	Restore(ctx context.Context, snapshot overlay.Snapshot) error
}

type entry struct {
	cfg      modality.Config
	producer modality.Producer
}

type Dispatcher struct {
	logger   *slog.Logger
	poster   Poster
	renderer Renderer

	mu        sync.RWMutex
	entries   map[string]entry
	snapshots map[string]overlay.Snapshot

	group   singleflight.Group
	workers sync.WaitGroup
}

func New(logger *slog.Logger, poster Poster, renderer Renderer) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		poster:    poster,
		renderer:  renderer,
		entries:   make(map[string]entry),
		snapshots: make(map[string]overlay.Snapshot),
	}
}

// Register binds the producer for cfg.Name. Registering twice replaces it.
func (d *Dispatcher) Register(cfg modality.Config, producer modality.Producer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[cfg.Name] = entry{cfg: cfg, producer: producer}
}

// Action returns the display action for name, suitable for timers and keys.
func (d *Dispatcher) Action(ctx context.Context, name string) func() {
	return func() {
		if err := d.Trigger(ctx, name); err != nil {
			d.logger.ErrorContext(ctx, "dispatch: trigger failed", slog.String("name", name), slog.Any("error", err))
		}
	}
}

// Trigger produces and renders the message for name. It returns as soon as
// the work is handed to a worker. A trigger arriving while the same modality
// is still being produced is folded into the running one.
func (d *Dispatcher) Trigger(ctx context.Context, name string) error {
	d.mu.RLock()
	e, ok := d.entries[name]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModality, name)
	}

	d.workers.Add(1)
	go func() {
		defer d.workers.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.ErrorContext(ctx, "dispatch: recovered from panic in producer", slog.String("name", name), slog.Any("panic", r))
			}
		}()

		_, _, shared := d.group.Do(name, func() (any, error) {
			d.produceAndPost(ctx, e)
			return nil, nil
		})

		if shared {
			d.logger.DebugContext(ctx, "dispatch: trigger folded into running fetch", slog.String("name", name))
		}
	}()

	return nil
}

func (d *Dispatcher) produceAndPost(ctx context.Context, e entry) {
	start := time.Now()
	message := e.producer.Produce(ctx, e.cfg)

	d.logger.DebugContext(
		ctx,
		"dispatch: produced",
		slog.String("name", e.cfg.Name),
		slog.String("message", message),
		slog.Duration("elapsed", time.Since(start)),
	)

	posted := d.poster.Post(func() {
		snapshot, err := d.renderer.Render(ctx, message, e.cfg)
		if err != nil {
			d.logger.ErrorContext(ctx, "dispatch: render failed", slog.String("name", e.cfg.Name), slog.Any("error", err))
		}

		d.mu.Lock()
		d.snapshots[e.cfg.Name] = snapshot
		d.mu.Unlock()
	})

	if !posted {
		d.logger.WarnContext(ctx, "dispatch: loop stopped, dropping message", slog.String("name", e.cfg.Name))
	}
}

// Restore puts back the style that was live before name last rendered.
func (d *Dispatcher) Restore(ctx context.Context, name string) error {
	d.mu.RLock()
	_, known := d.entries[name]
	d.mu.RUnlock()

	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownModality, name)
	}

	snapshot, ok := d.Snapshot(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSnapshot, name)
	}

	posted := d.poster.Post(func() {
		if err := d.renderer.Restore(ctx, snapshot); err != nil {
			d.logger.ErrorContext(ctx, "dispatch: restore failed", slog.String("name", name), slog.Any("error", err))
		}
	})

	if !posted {
		return ErrLoopStopped
	}

	return nil
}

// Snapshot returns the style saved by the last render of name.
func (d *Dispatcher) Snapshot(name string) (overlay.Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot, ok := d.snapshots[name]
	return snapshot, ok
}

func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	return names
}

// Wait blocks until every running producer has finished.
func (d *Dispatcher) Wait() {
	d.workers.Wait()
}
