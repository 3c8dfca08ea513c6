// Package overlay applies a modality's display style overrides around the
// message it shows.
//
// Render leaves the overrides in place: the host queues the message and draws
// it later, so restoring right after the call would restyle a message that has
// not been drawn yet. The snapshot taken before the overrides is handed back so
// the caller can Restore it when it decides to.
package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucax88x/mpvtick/internal/modality"
)

// Store reads and writes live display style properties.
type Store interface {
	GetProperty(ctx context.Context, name string) (any, error)
	SetProperty(ctx context.Context, name string, value any) error
}

// Display shows text for a duration.
type Display interface {
	ShowText(ctx context.Context, text string, duration time.Duration) error
}

// Snapshot holds the values style properties had before a render.
type Snapshot []modality.Override

func (s Snapshot) Values() map[string]any {
	values := make(map[string]any, len(s))
	for _, o := range s {
		values[o.Property] = o.Value
	}
	return values
}

type Overlay struct {
	logger  *slog.Logger
	store   Store
	display Display
}

func New(logger *slog.Logger, store Store, display Display) *Overlay {
	return &Overlay{
		logger:  logger,
		store:   store,
		display: display,
	}
}

// Render snapshots the properties cfg overrides, applies the overrides and
// shows message for cfg.Duration.
func (o *Overlay) Render(ctx context.Context, message string, cfg modality.Config) (Snapshot, error) {
	snapshot := make(Snapshot, 0, len(cfg.Style))

	for _, override := range cfg.Style {
		value, err := o.store.GetProperty(ctx, override.Property)
		if err != nil {
			o.logger.WarnContext(
				ctx,
				"overlay: could not read style property, it will not be restored",
				slog.String("name", cfg.Name),
				slog.String("property", override.Property),
				slog.Any("error", err),
			)
			continue
		}

		snapshot = append(snapshot, modality.Override{Property: override.Property, Value: value})
	}

	for _, override := range cfg.Style {
		if err := o.store.SetProperty(ctx, override.Property, override.Value); err != nil {
			o.logger.WarnContext(
				ctx,
				"overlay: could not apply style override",
				slog.String("name", cfg.Name),
				slog.String("property", override.Property),
				slog.Any("value", override.Value),
				slog.Any("error", err),
			)
		}
	}

	o.logger.DebugContext(ctx, "overlay: style saved", slog.String("name", cfg.Name), slog.Any("saved", snapshot.Values()))

	if err := o.display.ShowText(ctx, message, cfg.DisplayDuration()); err != nil {
		return snapshot, fmt.Errorf("overlay: could not show %s message. %w", cfg.Name, err)
	}

	return snapshot, nil
}

// Restore writes a snapshot back into the live style.
func (o *Overlay) Restore(ctx context.Context, snapshot Snapshot) error {
	o.logger.DebugContext(ctx, "overlay: restoring style", slog.Any("saved", snapshot.Values()))

	for _, saved := range snapshot {
		if err := o.store.SetProperty(ctx, saved.Property, saved.Value); err != nil {
			return fmt.Errorf("overlay: could not restore %s. %w", saved.Property, err)
		}
	}

	return nil
}
