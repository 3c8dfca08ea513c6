package scheduler

import (
	"time"

	"github.com/lucax88x/mpvtick/internal/loop"
)

type loopTimers struct {
	loop *loop.Loop
}

// LoopTimers runs every timer callback on l.
func LoopTimers(l *loop.Loop) Timers {
	return loopTimers{l}
}

func (t loopTimers) Every(interval time.Duration, fn func()) Periodic {
	return t.loop.Every(interval, fn)
}

func (t loopTimers) After(delay time.Duration, fn func()) {
	t.loop.After(delay, fn)
}
