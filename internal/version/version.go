package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the huffls binary.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the server.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with one color per major/minor/patch component. The
// pre-release suffix stays plain. Anything that is not x.y.z is returned
// unchanged.
func Colored(v string, enabled bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 || !enabled {
		return v
	}
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		c.EnableColor()
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}
