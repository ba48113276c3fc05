package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- content length is checked by callers
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line := lineOf(lineIdx, off)
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115 -- line <= len(lineIdx)
}

// lineOf returns the zero-based line holding off: the count of newlines
// strictly before off. Бинпоиск по LineIdx.
func lineOf(lineIdx []uint32, off uint32) int {
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// relativePath renders target relative to baseDir; targets outside baseDir
// keep their absolute form.
func relativePath(target, baseDir string) string {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return normalizePath(target)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return normalizePath(absTarget)
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget)
	}
	return normalizePath(rel)
}
