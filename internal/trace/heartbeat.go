package trace

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stuck server can be told apart from
// an idle one: heartbeats keep coming while no span ends. Each beat reports
// the goroutine count.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts beating on t every interval. It returns nil when t
// is disabled or interval is not positive; Stop accepts nil.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(t, interval)
	return h
}

func (h *Heartbeat) run(t Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeServer,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d goroutines=%d", beat, runtime.NumGoroutine()),
			})
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
