package trace

import (
	"errors"
	"io"
	"os"
	"sync"
)

// gate is the level filter shared by all sinks. Heartbeats always pass.
type gate struct{ level Level }

func (g gate) Level() Level  { return g.level }
func (g gate) Enabled() bool { return g.level > LevelOff }
func (g gate) accepts(ev *Event) bool {
	return ev.Kind == KindHeartbeat || g.level.ShouldEmit(ev.Scope)
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// StreamTracer writes every accepted event to w as soon as it arrives.
type StreamTracer struct {
	gate
	format Format
	mu     sync.Mutex
	w      io.Writer
}

// NewStreamTracer creates a StreamTracer; FormatAuto means text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level}, format: format.resolve(""), w: w}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = NextSeq()
	// ошибки записи трейса не должны ронять сервер
	_, _ = t.w.Write(FormatEvent(ev, t.format))
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w. Stdout and stderr stay open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the most recent events in memory. The server dumps it
// when a command fails.
type RingTracer struct {
	gate
	mu    sync.Mutex
	buf   []Event
	start int // индекс самого старого события
	n     int
}

// NewRingTracer creates a ring of the given capacity (4096 if not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{gate: gate{level}, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = stored
		t.n++
		return
	}
	t.buf[t.start] = stored
	t.start = (t.start + 1) % len(t.buf)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// tee fans events out to several sinks; used for ModeBoth.
type tee struct {
	gate
	sinks []Tracer
}

func (t *tee) Emit(ev *Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *tee) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *tee) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// RingOf returns the in-memory buffer of t: the tracer itself in ring mode,
// or its ring half in both mode.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch v := t.(type) {
	case *RingTracer:
		return v, true
	case *tee:
		for _, s := range v.sinks {
			if r, ok := s.(*RingTracer); ok {
				return r, true
			}
		}
	}
	return nil, false
}
