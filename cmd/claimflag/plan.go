package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimflag/internal/classify"
	"github.com/gyeh/claimflag/internal/exitcode"
	"github.com/gyeh/claimflag/internal/logging"
	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
	"github.com/gyeh/claimflag/internal/parquetread"
)

var planMode string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and cohort stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to claims Parquet file (required)")
	planCmd.Flags().StringVar(&planMode, "mode", "temporal", "Classification mode to validate for: temporal, binary, or editpair")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	mode := classify.Mode(planMode)
	switch mode {
	case classify.ModeTemporal, classify.ModeBinary, classify.ModeEditPair:
	default:
		log.Error().Str("mode", planMode).Msg("unknown mode")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	reader, err := parquetread.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open parquet file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema(), mode); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.ValidationError)
	}

	raws, err := reader.ReadAll()
	if err != nil {
		log.Error().Err(err).Msg("read failed")
		os.Exit(exitcode.ValidationError)
	}

	lines := make([]model.ClaimLine, 0, len(raws))
	var badRows int
	for i := range raws {
		line, err := normalize.ToClaimLine(&raws[i])
		if err != nil {
			badRows++
			log.Warn().Err(err).Int("row", i+1).Msg("row would fail normalization")
			continue
		}
		lines = append(lines, *line)
	}

	fmt.Printf("File:     %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:  %s\n", sha)
	fmt.Printf("Rows:     %d (%d would fail normalization)\n", len(raws), badRows)
	fmt.Printf("Mode:     %s\n", mode)
	fmt.Printf("Cohorts:  %d\n", classify.CohortCount(mode, lines))
	return nil
}
