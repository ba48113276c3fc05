package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// Huff identifiers are ASCII only.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
