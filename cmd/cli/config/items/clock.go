package items

import (
	"context"
	"log/slog"

	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/ncruces/go-strftime"
)

type ClockItem struct {
	logger *slog.Logger
	clock  clock.Clock
}

func NewClockItem(logger *slog.Logger, clock clock.Clock) ClockItem {
	return ClockItem{logger, clock}
}

// Produce formats the current time with the strftime layout in params.format.
func (i ClockItem) Produce(_ context.Context, cfg modality.Config) string {
	return strftime.Format(cfg.ParamOr("format", "%H:%M"), i.clock.Now())
}

var _ modality.Producer = (*ClockItem)(nil)
