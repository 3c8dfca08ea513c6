// Package scheduler arms the timers of each modality. A modality first shows
// either on the next wall clock multiple of its interval or at its show_at
// offset within the hour, and then repeats every interval from that moment.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/lucax88x/mpvtick/internal/timing"
)

// Periodic is a repeating timer that can be held and released.
type Periodic interface {
	Stop()
	Resume()
}

// Timers is the host timer primitive.
type Timers interface {
	Every(interval time.Duration, fn func()) Periodic
	After(delay time.Duration, fn func())
}

// KeyBinder binds a key so that pressing it runs fn.
type KeyBinder interface {
	BindKey(ctx context.Context, key string, action string, fn func()) error
}

type Mode string

const (
	ModeAligned Mode = "aligned"
	ModeTarget  Mode = "show_at"
)

// Plan is the first fire computation for one modality.
type Plan struct {
	Name      string
	Interval  time.Duration
	Delay     time.Duration
	FirstFire time.Time
	Mode      Mode
}

type Scheduler struct {
	logger *slog.Logger
	clock  clock.Clock
	timers Timers
	keys   KeyBinder
}

func New(logger *slog.Logger, clock clock.Clock, timers Timers, keys KeyBinder) *Scheduler {
	return &Scheduler{
		logger: logger,
		clock:  clock,
		timers: timers,
		keys:   keys,
	}
}

// Compute works out when cfg first fires relative to now. It reports false
// for inert modalities and for intervals that do not parse to a positive
// number of seconds.
func Compute(cfg modality.Config, now time.Time) (Plan, bool) {
	if !cfg.Enabled() {
		return Plan{}, false
	}

	interval := timing.Parse(cfg.Interval)
	if interval <= 0 {
		return Plan{}, false
	}

	plan := Plan{
		Name:     cfg.Name,
		Interval: timing.Seconds(interval),
		Mode:     ModeAligned,
	}

	var delay int
	if cfg.ShowAt != "" {
		plan.Mode = ModeTarget
		delay = timing.DelayUntil(timing.Parse(cfg.ShowAt), now.Unix())
	} else {
		delay = timing.AlignedDelay(interval, now.Unix())
	}

	plan.Delay = timing.Seconds(delay)
	plan.FirstFire = now.Truncate(time.Second).Add(plan.Delay)

	return plan, true
}

// Schedule arms the timers for cfg and binds its trigger key. It returns
// false when the modality was left inert.
func (s *Scheduler) Schedule(ctx context.Context, cfg modality.Config, action func()) bool {
	if !cfg.Enabled() {
		s.logger.DebugContext(ctx, "scheduler: modality disabled", slog.String("name", cfg.Name))
		return false
	}

	plan, ok := Compute(cfg, s.clock.Now())
	if !ok {
		s.logger.ErrorContext(
			ctx,
			"scheduler: interval must be a positive duration, modality left inert",
			slog.String("name", cfg.Name),
			slog.String("interval", cfg.Interval),
		)
		return false
	}

	periodic := s.timers.Every(plan.Interval, action)
	periodic.Stop()

	s.timers.After(plan.Delay, func() {
		periodic.Resume()
		action()
	})

	s.logger.InfoContext(
		ctx,
		"scheduler: armed",
		slog.String("name", cfg.Name),
		slog.String("mode", string(plan.Mode)),
		slog.Duration("interval", plan.Interval),
		slog.Duration("delay", plan.Delay),
		slog.Time("first", plan.FirstFire),
	)

	if cfg.HasTriggerKey() {
		if err := s.keys.BindKey(ctx, cfg.TriggerKey, cfg.Name, action); err != nil {
			s.logger.ErrorContext(
				ctx,
				"scheduler: could not bind trigger key",
				slog.String("name", cfg.Name),
				slog.String("key", cfg.TriggerKey),
				slog.Any("error", err),
			)
		}
	}

	return true
}
