package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"huffls/internal/config"
	"huffls/internal/version"
)

// versionReport is the build stamp together with the configuration the
// language server would start with in the current directory.
type versionReport struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Message string `json:"message,omitempty"`
	Built   string `json:"built,omitempty"`

	Config          string `json:"config"`
	ConfigError     string `json:"config_error,omitempty"`
	CompletionScope string `json:"completion_scope,omitempty"`
	TraceLevel      string `json:"trace_level,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "include commit, commit message and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show huffls build information and the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		// битый конфиг не мешает показать версию
		cfg, _, err := loadConfig(cmd)
		rep := buildVersionReport(cfg, err, versionFull)

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		rep.writePretty(cmd.OutOrStdout(), useColor(cmd, cmd.OutOrStdout()))
		return nil
	},
}

func buildVersionReport(cfg config.Config, cfgErr error, full bool) versionReport {
	rep := versionReport{Tool: "huffls", Version: strings.TrimSpace(version.Version)}
	if rep.Version == "" {
		rep.Version = "dev"
	}
	if full {
		rep.Commit = stamp(version.GitCommit)
		rep.Message = stamp(version.GitMessage)
		rep.Built = stamp(version.BuildDate)
	}

	switch {
	case cfgErr != nil:
		rep.Config = "invalid"
		rep.ConfigError = cfgErr.Error()
		return rep
	case cfg.Path == "":
		rep.Config = "built-in defaults"
	default:
		rep.Config = cfg.Path
	}
	rep.CompletionScope = cfg.CompletionScope().String()
	rep.TraceLevel = cfg.Trace.Level
	return rep
}

func (rep versionReport) writePretty(out io.Writer, color bool) {
	fmt.Fprintf(out, "huffls %s\n", version.Colored(rep.Version, color))
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "  %-17s %s\n", label+":", value)
		}
	}
	row("commit", rep.Commit)
	row("message", rep.Message)
	row("built", rep.Built)
	row("config", rep.Config)
	row("config error", rep.ConfigError)
	row("completion scope", rep.CompletionScope)
	row("trace level", rep.TraceLevel)
}

// stamp turns an empty link-time value into "unknown".
func stamp(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
