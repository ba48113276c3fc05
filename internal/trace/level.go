package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring buffer only, dumped after a failure
	LevelPhase               // server + pass boundaries
	LevelDetail              // per-document events
	LevelDebug               // everything including every message
)

// levels maps names to levels; the first name of each level is canonical.
var levels = []struct {
	names    []string
	level    Level
	maxScope Scope
}{
	{[]string{"off", ""}, LevelOff, 0},
	{[]string{"error"}, LevelError, ScopePass},
	{[]string{"phase"}, LevelPhase, ScopePass},
	{[]string{"detail"}, LevelDetail, ScopeDocument},
	{[]string{"debug", "verbose"}, LevelDebug, ScopeMessage},
}

func (l Level) String() string {
	if int(l) < len(levels) {
		return levels[l].names[0]
	}
	return "unknown"
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	for _, entry := range levels {
		for _, name := range entry.names {
			if name == s {
				return entry.level, nil
			}
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levels) {
		return false
	}
	return scope <= levels[l].maxScope
}
