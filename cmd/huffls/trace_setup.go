package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"huffls/internal/config"
	"huffls/internal/trace"
)

func registerTraceFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for ring/both modes")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
}

// setupTracing inspects trace-related flags and initializes the tracer.
// Flags that were not set fall back to the [trace] table of huffls.toml.
// The returned cleanup dumps the ring buffer when failed is true.
func setupTracing(cmd *cobra.Command, fromFile config.TraceConfig) (func(failed bool), error) {
	root := cmd.Root()
	flags := root.PersistentFlags()

	pick := func(name, fallback string) (string, error) {
		v, err := flags.GetString(name)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		if !flags.Changed(name) && fallback != "" {
			return fallback, nil
		}
		return v, nil
	}

	output := fromFile.Output
	if output == "stderr" {
		output = "-"
	}
	traceOutput, err := pick("trace", output)
	if err != nil {
		return nil, err
	}
	levelStr, err := pick("trace-level", fromFile.Level)
	if err != nil {
		return nil, err
	}
	formatStr, err := pick("trace-format", fromFile.Format)
	if err != nil {
		return nil, err
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	root.SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	started := time.Now()
	cleanup := func(failed bool) {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		trace.Point(tracer, trace.ScopeServer, "exit", time.Since(started).String())
		if ring, ok := trace.RingOf(tracer); ok && failed {
			if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
