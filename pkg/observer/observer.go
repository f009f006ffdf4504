// Package observer renders the live state of a running counter on its own
// cadence, independent of the counter's tick interval.
package observer

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/agusespa/tickduel/pkg/counter"
)

// DefaultInterval is how often the observer polls the counter.
const DefaultInterval = 30 * time.Millisecond

var ErrRenderPanic = errors.New("observer: render panicked")

// Source is the read-only view of the counter the observer polls.
type Source interface {
	Snapshot() counter.Snapshot
}

// Frame is what gets drawn on each poll.
type Frame struct {
	Target uint32
	Miss   uint32
	Value  uint32
}

// Renderer draws frames. Render overwrites the previous frame in place;
// Finish is called once after the last frame.
type Renderer interface {
	Render(Frame) error
	Finish() error
}

type Option func(*settings)

type settings struct {
	interval time.Duration
	sleep    func(time.Duration)
}

// WithInterval overrides the polling interval. Non-positive values keep the
// default.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSleep replaces the function used to wait between polls.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *settings) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// Handle joins an observer loop.
type Handle struct {
	done   chan struct{}
	frames int

	mu  sync.Mutex
	err error
}

// Observe starts polling src and rendering target, miss and value until the
// counter reports it is no longer running. The caller must Wait on the
// returned handle after stopping the counter.
func Observe(src Source, target uint32, r Renderer, opts ...Option) *Handle {
	cfg := settings{
		interval: DefaultInterval,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.setErr(h.loop(src, target, r, cfg))
		if err := finish(r); err != nil {
			h.setErr(err)
		}
	}()
	return h
}

// Wait blocks until the loop has exited and the renderer has been finished.
// It returns the first render error or recovered panic.
func (h *Handle) Wait() error {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Frames reports how many frames were rendered. Only meaningful after Wait.
func (h *Handle) Frames() int {
	<-h.done
	return h.frames
}

func (h *Handle) setErr(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	if h.err == nil {
		h.err = err
	}
	h.mu.Unlock()
}

func (h *Handle) loop(src Source, target uint32, r Renderer, cfg settings) error {
	for {
		snap := src.Snapshot()
		if !snap.Running {
			return nil
		}
		if err := render(r, Frame{Target: target, Miss: snap.Miss, Value: snap.Value}); err != nil {
			return err
		}
		h.frames++
		cfg.sleep(cfg.interval)
	}
}

func render(r Renderer, f Frame) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrap(ErrRenderPanic, fmt.Sprint(p))
		}
	}()
	if err := r.Render(f); err != nil {
		return errors.Wrap(err, "failed to render frame")
	}
	return nil
}

func finish(r Renderer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrap(ErrRenderPanic, fmt.Sprint(p))
		}
	}()
	if err := r.Finish(); err != nil {
		return errors.Wrap(err, "failed to finish rendering")
	}
	return nil
}
