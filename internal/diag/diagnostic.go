package diag

import (
	"huffls/internal/source"
)

// Range is an editor range between two positions.
type Range struct {
	Start source.Position `json:"start"`
	End   source.Position `json:"end"`
}

// Diagnostic is a positioned message ready to publish.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Code     Code
	Message  string
	// Cause keeps the producer's message; the editor shows Message.
	Cause string
}

// UnrecognizedMessage is the message of span-less diagnostics.
const UnrecognizedMessage = "Unrecognized error"
