package observer

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/tickduel/pkg/counter"
)

// scriptedSource replays snapshots in order and repeats the last one.
type scriptedSource struct {
	mu    sync.Mutex
	snaps []counter.Snapshot
	reads int
}

func (s *scriptedSource) Snapshot() counter.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.reads
	if i >= len(s.snaps) {
		i = len(s.snaps) - 1
	}
	s.reads++
	return s.snaps[i]
}

type recordingRenderer struct {
	mu       sync.Mutex
	frames   []Frame
	finished int
	failOn   int
	err      error
	panicOn  int
}

func (r *recordingRenderer) Render(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	if r.panicOn > 0 && len(r.frames) == r.panicOn {
		panic("boom")
	}
	if r.failOn > 0 && len(r.frames) == r.failOn {
		return r.err
	}
	return nil
}

func (r *recordingRenderer) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
	return nil
}

func noSleep(time.Duration) {}

func TestObserveRendersUntilStopped(t *testing.T) {
	src := &scriptedSource{snaps: []counter.Snapshot{
		{Value: 99, Miss: 0, Running: true},
		{Value: 100, Miss: 0, Running: true},
		{Value: 0, Miss: 1, Running: true},
		{Value: 1, Miss: 1, Running: false},
	}}
	r := &recordingRenderer{}

	h := Observe(src, 42, r, WithSleep(noSleep))
	require.NoError(t, h.Wait())

	assert.Equal(t, []Frame{
		{Target: 42, Miss: 0, Value: 99},
		{Target: 42, Miss: 0, Value: 100},
		{Target: 42, Miss: 1, Value: 0},
	}, r.frames)
	assert.Equal(t, 1, r.finished)
	assert.Equal(t, 3, h.Frames())
}

func TestObserveIdleSource(t *testing.T) {
	src := &scriptedSource{snaps: []counter.Snapshot{{}}}
	r := &recordingRenderer{}

	h := Observe(src, 7, r, WithSleep(noSleep))
	require.NoError(t, h.Wait())

	assert.Empty(t, r.frames)
	assert.Equal(t, 1, r.finished)
	select {
	case <-h.Done():
	default:
		t.Error("expected Done to be closed after Wait")
	}
}

func TestObserveRenderError(t *testing.T) {
	src := &scriptedSource{snaps: []counter.Snapshot{{Value: 1, Running: true}}}
	broken := errors.New("broken pipe")
	r := &recordingRenderer{failOn: 2, err: broken}

	h := Observe(src, 7, r, WithSleep(noSleep))
	err := h.Wait()

	require.Error(t, err)
	assert.ErrorIs(t, err, broken)
	assert.Len(t, r.frames, 2)
	assert.Equal(t, 1, r.finished)
}

func TestObservePanicDoesNotTouchCounter(t *testing.T) {
	e := counter.New()
	require.NoError(t, e.Start(time.Millisecond))

	r := &recordingRenderer{panicOn: 1}
	h := Observe(e, 10, r, WithInterval(time.Millisecond))
	err := h.Wait()

	assert.ErrorIs(t, err, ErrRenderPanic)
	assert.True(t, e.Snapshot().Running, "counter must keep running after a render panic")

	time.Sleep(20 * time.Millisecond)
	value, miss := e.Stop()
	e.Wait()
	assert.True(t, value > 0 || miss > 0)
}

func TestObserveLiveCounterNeverRendersOverflow(t *testing.T) {
	e := counter.New()
	require.NoError(t, e.Start(time.Microsecond))

	r := &recordingRenderer{}
	h := Observe(e, 50, r, WithInterval(time.Millisecond))

	time.Sleep(50 * time.Millisecond)
	e.Stop()
	require.NoError(t, h.Wait())
	e.Wait()

	require.NotEmpty(t, r.frames)
	for _, f := range r.frames {
		assert.LessOrEqual(t, f.Value, uint32(counter.MaxValue))
		assert.Equal(t, uint32(50), f.Target)
	}
}

func TestWithInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected time.Duration
	}{
		{"default", 0, DefaultInterval},
		{"negative keeps default", -time.Second, DefaultInterval},
		{"custom", 5 * time.Millisecond, 5 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []time.Duration
			src := &scriptedSource{snaps: []counter.Snapshot{
				{Running: true},
				{Running: false},
			}}
			h := Observe(src, 0, NopRenderer{},
				WithInterval(tt.interval),
				WithSleep(func(d time.Duration) { got = append(got, d) }))
			require.NoError(t, h.Wait())
			assert.Equal(t, []time.Duration{tt.expected}, got)
		})
	}
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf)

	require.NoError(t, r.Render(Frame{Target: 12, Miss: 1, Value: 34}))
	assert.Equal(t, "\r\x1B[K→ Objective 12: Miss = 1 | Counter = 34", buf.String())

	buf.Reset()
	require.NoError(t, r.Finish())
	assert.Equal(t, "\r\x1B[K", buf.String())
}
