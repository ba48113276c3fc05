package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a file's content.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Debug renders the span the way diagnostics quote it: Span { start: S, end: E }.
func (s Span) Debug() string {
	return fmt.Sprintf("Span { start: %d, end: %d }", s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies strictly between Start and End.
func (s Span) Contains(off uint32) bool {
	return s.Start < off && off < s.End
}
