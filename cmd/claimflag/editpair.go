package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimflag/internal/classify"
	"github.com/gyeh/claimflag/internal/db"
	"github.com/gyeh/claimflag/internal/exitcode"
	"github.com/gyeh/claimflag/internal/logging"
	"github.com/gyeh/claimflag/internal/lookup"
	"github.com/gyeh/claimflag/internal/pipeline"
)

var editpairCmd = &cobra.Command{
	Use:   "editpair",
	Short: "Flag lines by NCCI edit-pair intersection per encounter",
	Long: "Fetches the per-encounter edit-pair intersection table from the reference lookup\n" +
		"service (remote query service via --lookup-url, or the claims warehouse via --dsn)\n" +
		"and flags each line by membership in the reference/target code sets.",
	RunE: runEditPair,
}

func init() {
	f := editpairCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to claims Parquet file (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Path for the flagged output Parquet file (required)")
	f.StringVar(&cfg.LookupURL, "lookup-url", "", "Base URL of the remote query service")
	_ = editpairCmd.MarkFlagRequired("file")
	_ = editpairCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(editpairCmd)
}

func runEditPair(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithOut(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.LookupURL == "" && cfg.DSN == "" {
		log.Error().Msg("one of --lookup-url or --dsn is required")
		os.Exit(exitcode.UsageError)
	}
	cfg.Mode = classify.ModeEditPair

	var svc lookup.Service
	if cfg.LookupURL != "" {
		httpSvc := lookup.NewHTTPService(cfg.LookupURL, log)
		httpSvc.PollInterval = cfg.PollInterval
		httpSvc.PollTimeout = cfg.PollTimeout
		svc = httpSvc
	} else {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		svc = &lookup.PGService{Pool: pool, Log: log}
	}

	summary, err := pipeline.Run(ctx, log, &cfg, svc)
	if err != nil {
		exitPipelineError(log, err)
	}

	fmt.Printf("Flagged %d rows across %d encounters (%.1fs)\n",
		summary.RowsRead, summary.Cohorts, summary.DurationTotal.Seconds())
	return nil
}
