package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LSP returns the DiagnosticSeverity number (1 error .. 3 information).
func (s Severity) LSP() int {
	switch s {
	case SevError:
		return 1
	case SevWarning:
		return 2
	default:
		return 3
	}
}
