package token

var keywords = map[string]Kind{
	"macro":                KwMacro,
	"fn":                   KwFn,
	"test":                 KwTest,
	"function":             KwFunction,
	"event":                KwEvent,
	"error":                KwError,
	"constant":             KwConstant,
	"table":                KwTable,
	"jumptable":            KwJumpTable,
	"jumptable__packed":    KwJumpTablePacked,
	"takes":                KwTakes,
	"returns":              KwReturns,
	"indexed":              KwIndexed,
	"view":                 KwView,
	"pure":                 KwPure,
	"payable":              KwPayable,
	"nonpayable":           KwNonPayable,
	"FREE_STORAGE_POINTER": KwFreeStoragePointer,
}

var directives = map[string]Kind{
	"#define":  Define,
	"#include": Include,
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupDirective returns the directive kind for text such as "#define".
func LookupDirective(text string) (Kind, bool) {
	k, ok := directives[text]
	return k, ok
}
