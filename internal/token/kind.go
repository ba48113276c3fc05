package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Opcode represents an EVM opcode mnemonic.
	Opcode
	// Builtin represents a compiler builtin such as __FUNC_SIG.
	Builtin

	// Define represents the '#define' directive.
	Define // #define
	// Include represents the '#include' directive.
	Include // #include

	// KwMacro represents the 'macro' keyword.
	KwMacro // macro
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwTest represents the 'test' keyword.
	KwTest // test
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwEvent represents the 'event' keyword.
	KwEvent // event
	// KwError represents the 'error' keyword.
	KwError // error
	// KwConstant represents the 'constant' keyword.
	KwConstant // constant
	// KwTable represents the 'table' keyword.
	KwTable // table
	// KwJumpTable represents the 'jumptable' keyword.
	KwJumpTable // jumptable
	// KwJumpTablePacked represents the 'jumptable__packed' keyword.
	KwJumpTablePacked // jumptable__packed
	// KwTakes represents the 'takes' keyword.
	KwTakes // takes
	// KwReturns represents the 'returns' keyword.
	KwReturns // returns
	// KwIndexed represents the 'indexed' keyword.
	KwIndexed    // indexed
	KwView       // view
	KwPure       // pure
	KwPayable    // payable
	KwNonPayable // nonpayable
	// KwFreeStoragePointer represents FREE_STORAGE_POINTER.
	KwFreeStoragePointer // FREE_STORAGE_POINTER

	// HexLit represents a 0x-prefixed literal.
	HexLit
	// NumLit represents a decimal literal.
	NumLit
	// StringLit represents a double or single quoted string.
	StringLit

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Lt       // <
	Gt       // >
	Comma    // ,
	Colon    // :
	Assign   // =
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
)

var kindNames = [...]string{
	Invalid:              "Invalid",
	EOF:                  "EOF",
	Ident:                "Ident",
	Opcode:               "Opcode",
	Builtin:              "Builtin",
	Define:               "Define",
	Include:              "Include",
	KwMacro:              "KwMacro",
	KwFn:                 "KwFn",
	KwTest:               "KwTest",
	KwFunction:           "KwFunction",
	KwEvent:              "KwEvent",
	KwError:              "KwError",
	KwConstant:           "KwConstant",
	KwTable:              "KwTable",
	KwJumpTable:          "KwJumpTable",
	KwJumpTablePacked:    "KwJumpTablePacked",
	KwTakes:              "KwTakes",
	KwReturns:            "KwReturns",
	KwIndexed:            "KwIndexed",
	KwView:               "KwView",
	KwPure:               "KwPure",
	KwPayable:            "KwPayable",
	KwNonPayable:         "KwNonPayable",
	KwFreeStoragePointer: "KwFreeStoragePointer",
	HexLit:               "HexLit",
	NumLit:               "NumLit",
	StringLit:            "StringLit",
	LParen:               "LParen",
	RParen:               "RParen",
	LBrace:               "LBrace",
	RBrace:               "RBrace",
	LBracket:             "LBracket",
	RBracket:             "RBracket",
	Lt:                   "Lt",
	Gt:                   "Gt",
	Comma:                "Comma",
	Colon:                "Colon",
	Assign:               "Assign",
	Plus:                 "Plus",
	Minus:                "Minus",
	Star:                 "Star",
	Slash:                "Slash",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
