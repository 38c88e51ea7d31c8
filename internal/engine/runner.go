package engine

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// ErrRunnerStopped is returned by Do once the runner has shut down.
var ErrRunnerStopped = errors.New("engine: runner stopped")

// ErrRunnerStarted is returned by Run when the runner is already running.
var ErrRunnerStarted = errors.New("engine: runner already started")

// Update is published after every tick and every applied command.
type Update struct {
	Snapshot Snapshot
	Frame    *core.Frame // Last drawn frame; nil if the surface cannot copy frames
}

// framer is implemented by surfaces that can hand out a copy of their pixels.
type framer interface {
	Frame() core.Frame
}

type command struct {
	fn    func(*Level)
	reply chan struct{}
}

// Runner owns a Level on a single goroutine. Ticks and externally submitted
// commands are serialized, so a command never observes a half-finished tick.
type Runner struct {
	level    *Level
	interval time.Duration
	logger   *log.Logger
	inbox    chan command
	updates  chan Update
	done     chan struct{}
	started  atomic.Bool
	frame    *core.Frame
}

// NewRunner creates a runner for level using the level's tick interval.
// The level must not be touched directly once Run has been called.
func NewRunner(level *Level, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		level:    level,
		interval: level.cfg.TickInterval,
		logger:   logger,
		inbox:    make(chan command, 64),
		updates:  make(chan Update, 1),
		done:     make(chan struct{}),
	}
}

// Run drives the level until ctx is cancelled. It returns ctx.Err() on
// teardown; the periodic timer is stopped before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrRunnerStarted
	}
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("runner started", "interval", r.interval)
	r.level.publish()
	r.emit()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped", "ticks", r.level.Ticks())
			return ctx.Err()

		case cmd := <-r.inbox:
			r.apply(cmd)

		case <-ticker.C:
			if r.level.Tick() {
				r.capture()
			}
			r.emit()
		}
	}
}

// Submit queues fn to run on the level goroutine without waiting.
// Returns false if the runner has stopped or the queue is full.
func (r *Runner) Submit(fn func(*Level)) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.inbox <- command{fn: fn}:
		return true
	default:
		r.logger.Warn("command dropped, inbox full")
		return false
	}
}

// Do runs fn on the level goroutine and waits for it to finish.
func (r *Runner) Do(ctx context.Context, fn func(*Level)) error {
	cmd := command{fn: fn, reply: make(chan struct{})}

	select {
	case r.inbox <- cmd:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-cmd.reply:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Updates delivers the newest Update. Stale updates are dropped when the
// reader falls behind.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Latest returns the most recently published snapshot.
func (r *Runner) Latest() Snapshot {
	return r.level.Latest()
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) apply(cmd command) {
	cmd.fn(r.level)
	r.level.publish()
	if cmd.reply != nil {
		close(cmd.reply)
	}
	r.emit()
}

// capture copies the surface pixels after a tick has drawn them.
func (r *Runner) capture() {
	if f, ok := r.level.surface.(framer); ok {
		frame := f.Frame()
		r.frame = &frame
	}
}

// emit publishes the latest state, replacing an unread update if needed.
func (r *Runner) emit() {
	u := Update{Snapshot: r.level.Latest(), Frame: r.frame}

	select {
	case r.updates <- u:
		return
	default:
	}

	select {
	case <-r.updates:
	default:
	}

	select {
	case r.updates <- u:
	default:
	}
}
