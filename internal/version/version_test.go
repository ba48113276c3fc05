package version

import (
	"regexp"
	"strings"
	"testing"
)

var semver = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

func TestDefaultVersionIsSemver(t *testing.T) {
	if !semver.MatchString(Version) {
		t.Fatalf("Version %q is not x.y.z[-pre]", Version)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		plain   bool // результат совпадает со входом
		suffix  string
	}{
		{"1.2.3-rc.1", false, true, ""},
		{"dev", true, true, ""},
		{"1.2", true, true, ""},
		{"1.2.3-rc.1", true, false, "-rc.1"},
		{"0.1.0+build.7", true, false, "+build.7"},
	}
	for _, tt := range tests {
		got := Colored(tt.in, tt.enabled)
		if tt.plain {
			if got != tt.in {
				t.Errorf("Colored(%q, %v) = %q, want it unchanged", tt.in, tt.enabled, got)
			}
			continue
		}
		if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("Colored(%q) = %q", tt.in, got)
		}
		if stripped := regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(got, ""); stripped != tt.in {
			t.Errorf("Colored(%q) without escapes = %q", tt.in, stripped)
		}
	}
}
