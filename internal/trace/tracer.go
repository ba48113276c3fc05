package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives events. All methods must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// StorageMode determines where events are kept.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(s)
	for m, name := range modeNames {
		if name != "" && name == s {
			return StorageMode(m), nil // #nosec G115 -- index of a 4-element array
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto: по расширению OutputPath
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "-", "stderr" or empty for stderr
	RingSize   int       // 0 means 4096
	Heartbeat  time.Duration
}

// New builds the tracer described by cfg. Level off yields Nop. Level error
// forces ring mode: events are only kept for a dump after a failure.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Level == LevelError {
		cfg.Mode = ModeRing
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}

	newStream := func() (*StreamTracer, error) {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamTracer(w, cfg.Level, cfg.Format.resolve(cfg.OutputPath)), nil
	}

	switch cfg.Mode {
	case ModeStream:
		return newStream()
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		stream, err := newStream()
		if err != nil {
			return nil, err
		}
		return &tee{
			gate:  gate{cfg.Level},
			sinks: []Tracer{stream, NewRingTracer(cfg.RingSize, cfg.Level)},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	switch cfg.OutputPath {
	case "", "-", "stderr":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
