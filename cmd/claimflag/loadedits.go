package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimflag/internal/db"
	"github.com/gyeh/claimflag/internal/exitcode"
	"github.com/gyeh/claimflag/internal/logging"
	"github.com/gyeh/claimflag/internal/pipeline"
)

var editsFile string

var loadEditsCmd = &cobra.Command{
	Use:   "load-edits",
	Short: "Load an NCCI PTP edits CSV into the reference schema",
	RunE:  runLoadEdits,
}

func init() {
	loadEditsCmd.Flags().StringVar(&editsFile, "file", "", "Path to NCCI PTP edits CSV (required)")
	_ = loadEditsCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadEditsCmd)
}

func runLoadEdits(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or CLAIMFLAG_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	if _, err := os.Stat(editsFile); err != nil {
		log.Error().Err(err).Msg("edits file not accessible")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	n, err := pipeline.LoadEdits(ctx, pool, log, editsFile)
	if err != nil {
		log.Error().Err(err).Msg("edits load failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Edits load complete: %d rows\n", n)
	return nil
}
