// Package loop is the single goroutine every timer callback and render runs
// on. Callbacks posted from other goroutines are executed one at a time, in
// the order they were posted.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrStopped = errors.New("loop: stopped")

type Loop struct {
	logger *slog.Logger
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
}

func New(logger *slog.Logger) *Loop {
	return &Loop{
		logger: logger,
		tasks:  make(chan func(), 64),
		done:   make(chan struct{}),
	}
}

// Run executes posted callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	l.logger.InfoContext(ctx, "loop: running")

	for {
		select {
		case <-ctx.Done():
			l.logger.InfoContext(ctx, "loop: stopping")
			return nil
		case task := <-l.tasks:
			l.execute(ctx, task)
		}
	}
}

func (l *Loop) execute(ctx context.Context, task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "loop: recovered from panic in task", slog.Any("panic", r))
		}
	}()

	task()
}

// Post queues fn for execution on the loop goroutine. It returns false once
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// After posts fn once delay has elapsed.
func (l *Loop) After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		l.Post(fn)
	})
}

// Every creates a running periodic timer that posts fn each interval.
func (l *Loop) Every(interval time.Duration, fn func()) *Periodic {
	p := &Periodic{
		loop:     l,
		interval: interval,
		fn:       fn,
	}
	p.Resume()

	return p
}

// Periodic fires at a fixed interval measured from the last Resume.
type Periodic struct {
	mu       sync.Mutex
	loop     *Loop
	interval time.Duration
	fn       func()
	stop     chan struct{}
}

func (p *Periodic) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		return
	}

	close(p.stop)
	p.stop = nil
}

func (p *Periodic) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
	}

	stop := make(chan struct{})
	p.stop = stop

	go p.tick(stop)
}

func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stop != nil
}

func (p *Periodic) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-p.loop.done:
			return
		case <-ticker.C:
			if !p.loop.Post(p.fn) {
				return
			}
		}
	}
}
