package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"huffls/internal/lsp"
	"huffls/internal/version"
)

var (
	lspLogToClient bool
	lspTraceLSP    bool
)

func init() {
	lspCmd.Flags().BoolVar(&lspLogToClient, "log-to-client", true, "mirror server log lines as window/logMessage")
	lspCmd.Flags().BoolVar(&lspTraceLSP, "trace-lsp", false, "log every JSON-RPC message to stderr")
}

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the Huff language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, explicit, err := loadConfig(cmd)
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

	// stdout занят протоколом, всё остальное идёт в stderr
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Config:         &cfg,
		DiscoverConfig: !explicit,
		LogToClient:    lspLogToClient,
		TraceLSP:       lspTraceLSP,
		Version:        version.Version,
	})
	err = server.Run(cmd.Context())
	stopProfiling()
	cleanup(err != nil && !errors.Is(err, lsp.ErrExit))
	if err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
