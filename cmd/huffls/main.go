package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"huffls/internal/config"
	"huffls/internal/prof"
	"huffls/internal/version"
)

// errFailed makes the process exit with status 1 without an extra message:
// the command has already printed what went wrong.
var errFailed = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:           "huffls",
	Short:         "Huff language server and checker",
	Long:          `huffls serves completion and diagnostics for Huff sources over LSP and checks them from the command line`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to huffls.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
	registerTraceFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "huffls: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, stream any) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	f, ok := stream.(*os.File)
	return ok && isTerminal(f)
}

// loadConfig reads --config or discovers huffls.toml from the working
// directory. explicit reports whether --config was given.
func loadConfig(cmd *cobra.Command) (cfg config.Config, explicit bool, err error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path != "" {
		cfg, err = config.Load(path)
		return cfg, true, err
	}
	cfg, err = config.Discover(".")
	return cfg, false, err
}

// withConfig loads the configuration and tracing before run and tears
// tracing down after it.
func withConfig(run func(cmd *cobra.Command, args []string, cfg config.Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd, cfg.Trace)
		if err != nil {
			return err
		}
		stopProfiling, err := startProfiling(cmd)
		if err != nil {
			cleanup(true)
			return err
		}
		err = run(cmd, args, cfg)
		stopProfiling()
		cleanup(err != nil && !errors.Is(err, errFailed))
		return err
	}
}

// startProfiling starts pprof and runtime tracing requested on the command
// line. The returned stop reports its own errors to stderr.
func startProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPUProfile, _ = flags.GetString("cpu-profile")
	opts.MemProfile, _ = flags.GetString("mem-profile")
	opts.RuntimeTrace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "huffls: %v\n", err)
		}
	}, nil
}
