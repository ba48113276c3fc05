package evm

// Builtins is the fixed catalog of compiler builtin functions, in the
// order completion offers them.
var Builtins = [...]string{
	"__tablesize",
	"__codesize",
	"__tablestart",
	"__FUNC_SIG",
	"__EVENT_HASH",
	"__ERROR",
	"__RIGHTPAD",
	"__CODECOPY_DYN_ARG",
}

// IsBuiltin reports whether name is one of Builtins.
func IsBuiltin(name string) bool {
	for _, b := range Builtins {
		if b == name {
			return true
		}
	}
	return false
}
