package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"huffls/internal/config"
	"huffls/internal/diagfmt"
	"huffls/internal/driver"
	"huffls/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.huff",
	Short: "Parse a Huff source file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  withConfig(runParse),
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runParse(cmd *cobra.Command, args []string, _ config.Config) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	file := fileSet.Get(id)

	contract, perr := driver.ParseFile(cmd.Context(), file)
	if perr != nil {
		stderr := cmd.ErrOrStderr()
		if entry, ok := diagfmt.EntryFor(file, perr); ok {
			diagfmt.Pretty(stderr, []diagfmt.Entry{entry}, diagfmt.PrettyOpts{
				Color:   useColor(cmd, stderr),
				Context: 2,
			})
		}
		return errFailed
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatContractJSON(out, contract)
	case "msgpack":
		return diagfmt.FormatContractMsgpack(out, contract)
	default:
		return diagfmt.FormatContractPretty(out, contract, file)
	}
}
