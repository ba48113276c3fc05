package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка: паника или иной непредусмотренный сбой
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadDirective             Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynUnexpectedTopLevel Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectDefinition   Code = 2005
	SynExpectLiteral      Code = 2006
	SynExpectArgument     Code = 2007
	SynExpectType         Code = 2008
	SynExpectBody         Code = 2009
	SynInvalidConstant    Code = 2010
	SynInvalidTableEntry  Code = 2011
	SynExpectStringPath   Code = 2012

	// Ввод-вывод (CLI)
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unrecognized error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	LexBadDirective:             "Unknown directive",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectDefinition:         "Expected definition kind after #define",
	SynExpectLiteral:            "Expected literal",
	SynExpectArgument:           "Expected argument",
	SynExpectType:               "Expected argument type",
	SynExpectBody:               "Expected body",
	SynInvalidConstant:          "Invalid constant value",
	SynInvalidTableEntry:        "Invalid table entry",
	SynExpectStringPath:         "Expected include path string",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
