// Package counter implements the live counter engine: a goroutine that
// increments a wrapping 0..100 value at a fixed interval and counts every
// wraparound as a miss.
package counter

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MaxValue is the highest value the counter reports. The tick after it wraps
// back to zero and records a miss.
const MaxValue = 100

var (
	ErrInvalidInterval = errors.New("counter: tick interval must be positive")
	ErrAlreadyRunning  = errors.New("counter: engine is already running")
)

// Snapshot is a point-in-time read of the engine state.
type Snapshot struct {
	Value   uint32
	Miss    uint32
	Running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSleep replaces the function the increment loop uses to wait between
// ticks. Tests use it to deliver synthetic ticks.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithLogger attaches a logger for run lifecycle messages.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// Engine owns the counter state. All fields behind mu are written together,
// so a reader never sees a value above MaxValue or a miss without its reset.
type Engine struct {
	mu      sync.RWMutex
	value   uint32
	miss    uint32
	running bool
	epoch   uint64

	loops sync.WaitGroup
	sleep func(time.Duration)
	log   zerolog.Logger
}

// New returns an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		sleep: time.Sleep,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start resets value and miss, marks the engine running and launches the
// increment loop. A loop left over from a previous run that has not woken up
// yet exits without touching the new run's state.
func (e *Engine) Start(interval time.Duration) error {
	if interval <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "got %s", interval)
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.value = 0
	e.miss = 0
	e.running = true
	e.epoch++
	epoch := e.epoch
	e.mu.Unlock()

	e.loops.Add(1)
	go e.run(epoch, interval)

	e.log.Debug().Uint64("epoch", epoch).Dur("interval", interval).Msg("counter started")
	return nil
}

// Stop asks the loop to exit and returns the value and miss count at the
// moment of the request. It does not wait for the loop; use Wait for that.
func (e *Engine) Stop() (value, miss uint32) {
	e.mu.Lock()
	e.running = false
	value, miss = e.value, e.miss
	epoch := e.epoch
	e.mu.Unlock()

	e.log.Debug().Uint64("epoch", epoch).Uint32("value", value).Uint32("miss", miss).Msg("counter stopped")
	return value, miss
}

// Snapshot returns the current state without mutating it.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{Value: e.value, Miss: e.miss, Running: e.running}
}

// Wait blocks until every increment loop started so far has exited. It must
// not be called concurrently with Start.
func (e *Engine) Wait() {
	e.loops.Wait()
}

func (e *Engine) run(epoch uint64, interval time.Duration) {
	defer e.loops.Done()
	for {
		e.sleep(interval)
		if !e.tick(epoch) {
			return
		}
	}
}

// tick applies one increment if the run identified by epoch is still live.
func (e *Engine) tick(epoch uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running || e.epoch != epoch {
		return false
	}
	e.value, e.miss = Advance(e.value, e.miss)
	return true
}

// Advance returns the state after one tick.
func Advance(value, miss uint32) (uint32, uint32) {
	value++
	if value > MaxValue {
		return 0, miss + 1
	}
	return value, miss
}
