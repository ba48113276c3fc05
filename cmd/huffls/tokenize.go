package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"huffls/internal/config"
	"huffls/internal/diagfmt"
	"huffls/internal/driver"
	"huffls/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.huff",
	Short: "Tokenize a Huff source file",
	Long:  `Tokenize breaks down a Huff source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  withConfig(runTokenize),
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string, _ config.Config) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	file := fileSet.Get(id)

	tokens, errs := driver.TokenizeAll(file)

	// Выводим диагностику в stderr, если есть
	if len(errs) > 0 {
		stderr := cmd.ErrOrStderr()
		entries := make([]diagfmt.Entry, 0, len(errs))
		for _, e := range errs {
			if entry, ok := diagfmt.EntryFor(file, e); ok {
				entries = append(entries, entry)
			}
		}
		diagfmt.Pretty(stderr, entries, diagfmt.PrettyOpts{
			Color:   useColor(cmd, stderr),
			Context: 2,
			Max:     maxDiagnostics,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		if err := diagfmt.FormatTokensJSON(out, tokens); err != nil {
			return err
		}
	} else if err := diagfmt.FormatTokensPretty(out, tokens, file); err != nil {
		return err
	}
	if len(errs) > 0 {
		return errFailed
	}
	return nil
}
