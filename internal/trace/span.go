package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a process-unique span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID parses the header of runtime.Stack: "goroutine 17 [running]:".
// Returns 0 if the format ever changes.
func goroutineID() uint64 {
	var buf [64]byte
	header := string(buf[:runtime.Stack(buf[:], false)])
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != "goroutine" {
		return 0
	}
	gid, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open operation. A disabled span is a valid value whose methods
// do nothing, so callers never check for nil.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	extra   map[string]string
}

// Begin emits a begin event and returns the span; parent is 0 for roots.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !admits(t, scope) {
		return &Span{}
	}
	now := time.Now()
	s := &Span{
		tracer: t,
		begin: Event{
			Time:     now,
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
		started: now,
	}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and the collected extras, and returns
// the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	dur := time.Since(s.started)
	ev := s.begin
	ev.Time = s.started.Add(dur)
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	if ev.Extra == nil {
		ev.Extra = make(map[string]string, 1)
	}
	ev.Extra["dur"] = dur.String()
	s.tracer.Emit(&ev)
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID; 0 for disabled spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event if the tracer accepts the scope.
func Point(t Tracer, scope Scope, name, detail string) {
	if !admits(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		GID:    goroutineID(),
		Name:   name,
		Detail: detail,
	})
}

func admits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}
