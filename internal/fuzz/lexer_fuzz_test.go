package fuzztests

import (
	"testing"

	"huffls/internal/driver"
	"huffls/internal/source"
	"huffls/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		file := source.NewFile("fuzz.huff", input, source.FileVirtual)
		size := uint32(len(file.Content)) // #nosec G115 -- clamped to 64 KiB

		tokens, errs := driver.TokenizeAll(file)
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
			t.Fatalf("token stream must end with EOF")
		}
		for _, tok := range tokens {
			if tok.Span.Start > tok.Span.End || tok.Span.End > size {
				t.Fatalf("token span %v outside of %d bytes", tok.Span, size)
			}
		}
		for _, e := range errs {
			for _, sp := range e.Spans {
				if sp.End > size {
					t.Fatalf("error span %v outside of %d bytes", sp, size)
				}
			}
		}
	})
}

// FuzzPositionRoundTrip checks that every offset the mapper accepts comes
// back unchanged from its editor position.
func FuzzPositionRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		file := source.NewFile("fuzz.huff", input, source.FileVirtual)
		for off := 0; off <= len(file.Content); off++ {
			o := uint32(off) // #nosec G115 -- clamped to 64 KiB
			pos, ok := file.OffsetToPosition(o)
			if !ok {
				continue
			}
			back, ok := file.PositionToOffset(pos)
			if !ok || back != o {
				t.Fatalf("offset %d -> %+v -> %d (ok=%v)", o, pos, back, ok)
			}
		}
	})
}
