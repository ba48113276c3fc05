package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

var inlineSeeds = []string{
	"",
	"#define macro MAIN() = takes(0) returns(0) {\n    0x01 add 0x02\n}\n",
	"#define macro MAIN() = takes(0) returns(0) {\n", // незакрытая скобка
	"#define macro M(a, b) = takes(2) returns(1) { <a> <b> add }",
	"#define constant X = 0x1234\n#define macro M() = { [X] }",
	"#define jumptable TBL { a b c }\n#define macro M() = { a: b: c: }",
	"/* unterminated",
	"#include \"./other.huff\"\n",
	"#define function f(uint256,address) view returns (bool)",
	"#define event Transfer(address indexed, uint256)",
	"// é 😀\n#define macro M() = { 0x01 }", // многобайтовые символы
	"0xZZ #define",
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.huff файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".huff" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
