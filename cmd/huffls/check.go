package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"huffls/internal/config"
	"huffls/internal/diagfmt"
	"huffls/internal/driver"
	"huffls/internal/observ"
	"huffls/internal/source"
)

var (
	checkFormat    string
	checkJobs      int
	checkCache     bool
	checkCacheDir  string
	checkDropCache bool
	checkContext   uint8
	checkTimings   bool
	checkBaseDir   string
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parallel parsers (0 = GOMAXPROCS)")
	checkCmd.Flags().BoolVar(&checkCache, "cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().StringVar(&checkCacheDir, "cache-dir", "", "disk cache location (default: $XDG_CACHE_HOME/huffls)")
	checkCmd.Flags().BoolVar(&checkDropCache, "drop-cache", false, "clear the disk cache before checking")
	checkCmd.Flags().Uint8Var(&checkContext, "context", 0, "source lines shown above each error")
	checkCmd.Flags().StringVar(&checkBaseDir, "base-dir", "", "render paths relative to this directory (default: working directory)")
	checkCmd.Flags().BoolVar(&checkTimings, "timings", false, "print phase timings to stderr")
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Parse Huff files and report the first error of each",
	Long: `Check parses every given .huff file (directories are walked recursively)
and prints the diagnostic an editor would show for it`,
	Args: cobra.MinimumNArgs(1),
	RunE: withConfig(runCheck),
}

func runCheck(cmd *cobra.Command, args []string, _ config.Config) error {
	format := strings.ToLower(checkFormat)
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short or json)", checkFormat)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	timer := observ.NewTimer()
	if checkTimings {
		defer timer.WriteSummary(cmd.ErrOrStderr())
	}

	var paths []string
	timer.Measure("expand", func() string {
		paths, err = driver.ExpandPaths(args)
		return fmt.Sprintf("%d file(s)", len(paths))
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s files found", driver.HuffExt)
	}

	var cache *driver.DiskCache
	timer.Measure("cache", func() string {
		cache, err = openCheckCache()
		if cache == nil {
			return "off"
		}
		return ""
	})
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		results []driver.CheckResult
	)
	timer.Measure("parse", func() string {
		fileSet, results, err = driver.CheckFiles(cmd.Context(), paths, driver.CheckOptions{
			Jobs:    checkJobs,
			Cache:   cache,
			BaseDir: checkBaseDir,
		})
		cached := 0
		for i := range results {
			if results[i].Cached {
				cached++
			}
		}
		return fmt.Sprintf("%d cached", cached)
	})
	if err != nil {
		return err
	}
	reportIdx := timer.Begin("report")
	defer timer.End(reportIdx, "")

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var entries []diagfmt.Entry
	failed := 0
	for i := range results {
		r := &results[i]
		if !r.Failed() {
			continue
		}
		failed++
		if r.LoadErr != nil {
			printLoadError(errOut, r.Path, r.LoadErr)
			continue
		}
		if e, ok := diagfmt.EntryFor(r.File, r.Err); ok {
			entries = append(entries, e)
		}
	}

	baseDir := fileSet.BaseDir()
	switch format {
	case "json":
		err = diagfmt.JSON(out, entries, diagfmt.JSONOpts{
			IncludePositions: true,
			BaseDir:          baseDir,
			Max:              maxDiagnostics,
		})
		if err != nil {
			return err
		}
	case "short":
		diagfmt.Short(out, entries, diagfmt.PrettyOpts{BaseDir: baseDir, Max: maxDiagnostics})
	default:
		colored := useColor(cmd, out)
		diagfmt.Pretty(out, entries, diagfmt.PrettyOpts{
			Color:   colored,
			Context: checkContext,
			BaseDir: baseDir,
			Max:     maxDiagnostics,
		})
		diagfmt.Summary(out, len(results), failed, colored)
	}

	if failed > 0 {
		return errFailed
	}
	return nil
}

func openCheckCache() (*driver.DiskCache, error) {
	if !checkCache && !checkDropCache {
		return nil, nil
	}
	var (
		cache *driver.DiskCache
		err   error
	)
	if checkCacheDir != "" {
		cache, err = driver.OpenDiskCacheAt(checkCacheDir)
	} else {
		cache, err = driver.OpenDiskCache("huffls")
	}
	if err != nil {
		return nil, fmt.Errorf("disk cache: %w", err)
	}
	if checkDropCache {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("disk cache: %w", err)
		}
	}
	if !checkCache {
		return nil, nil
	}
	return cache, nil
}

// printLoadError reports a file that could not be read at all.
func printLoadError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s: %v\n", path, err)
}
