package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimflag/internal/classify"
	"github.com/gyeh/claimflag/internal/exitcode"
	"github.com/gyeh/claimflag/internal/logging"
	"github.com/gyeh/claimflag/internal/pipeline"
)

var temporalCmd = &cobra.Command{
	Use:   "temporal",
	Short: "Flag duplicate-suspected lines by received-date clustering",
	RunE:  runTemporal,
}

func init() {
	f := temporalCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to claims Parquet file (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Path for the flagged output Parquet file (required)")
	f.BoolVar(&cfg.Binary, "binary", false, "Legacy binary flags (1/0) instead of reference/target/duplicate/other")
	_ = temporalCmd.MarkFlagRequired("file")
	_ = temporalCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(temporalCmd)
}

func runTemporal(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithOut(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	cfg.Mode = classify.ModeTemporal
	if cfg.Binary {
		cfg.Mode = classify.ModeBinary
	}

	summary, err := pipeline.Run(ctx, log, &cfg, nil)
	if err != nil {
		exitPipelineError(log, err)
	}

	fmt.Printf("Flagged %d rows across %d cohorts (%.1fs)\n",
		summary.RowsRead, summary.Cohorts, summary.DurationTotal.Seconds())
	return nil
}
