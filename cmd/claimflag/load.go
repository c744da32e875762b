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

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a claims Parquet file into the warehouse",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to claims Parquet file (required)")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := pipeline.Load(ctx, pool, log, cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Load complete: %d rows loaded, %d rejected (%.1fs)\n",
		summary.RowsLoaded, summary.RowsRejected, summary.Duration.Seconds())
	return nil
}
