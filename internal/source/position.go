package source

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return ^uint32(0)
	}
	return n
}

// LineCount returns the number of lines, counting a trailing empty line.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// lineBounds returns [start, end) of the zero-based line, excluding its '\n'.
func (f *File) lineBounds(line uint32) (start, end uint32) {
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	end = f.size()
	if int(line) < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	return start, end
}

// OffsetToPosition maps a byte offset to a zero-based line and UTF-16 column.
// The offset may equal len(Content) (end of buffer). It fails for offsets
// past the end and for offsets that split a multi-byte rune.
//
// The line is found by binary search over LineIdx; only the bytes of the
// target line before the offset are decoded.
func (f *File) OffsetToPosition(offset uint32) (Position, bool) {
	if f == nil || offset > f.size() {
		return Position{}, false
	}
	if offset < f.size() && !utf8.RuneStart(f.Content[offset]) {
		return Position{}, false
	}
	line := lineOf(f.LineIdx, offset)
	lineU32, err := safecast.Conv[uint32](line)
	if err != nil {
		return Position{}, false
	}
	start, _ := f.lineBounds(lineU32)

	units := uint32(0)
	for off := start; off < offset; {
		r, size := utf8.DecodeRune(f.Content[off:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}
	return Position{Line: lineU32, Character: units}, true
}

// PositionToOffset maps an editor position back to a byte offset. Columns
// past the end of the line clamp to the line end; a line past the end of
// the file fails.
func (f *File) PositionToOffset(pos Position) (uint32, bool) {
	if f == nil || int(pos.Line) >= f.LineCount() {
		return 0, false
	}
	start, end := f.lineBounds(pos.Line)
	units := uint32(0)
	off := start
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRune(f.Content[off:end])
		need := uint32(1)
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}
	return off, true
}

// SpanToRange maps both ends of span; ok is false if either end fails.
func (f *File) SpanToRange(span Span) (start, end Position, ok bool) {
	start, ok = f.OffsetToPosition(span.Start)
	if !ok {
		return Position{}, Position{}, false
	}
	end, ok = f.OffsetToPosition(span.End)
	if !ok {
		return Position{}, Position{}, false
	}
	return start, end, true
}
