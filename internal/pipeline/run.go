// Package pipeline orchestrates a classification pass: read the claims
// table, validate its schema, normalize, classify, render flags, and write
// the flagged table. Row count and order are preserved 1:1 with input.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/classify"
	"github.com/gyeh/claimflag/internal/config"
	"github.com/gyeh/claimflag/internal/lookup"
	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
	"github.com/gyeh/claimflag/internal/parquetread"
	"github.com/gyeh/claimflag/internal/parquetwrite"
)

const writeBatchSize = 1024

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes one classification pass. svc supplies the edit-pair
// intersection table and may be nil for the temporal and binary modes.
// Any failure aborts the whole pass; there are no partial results.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, svc lookup.Service) (*model.RunSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "open", Err: err}
	}

	reader, err := parquetread.Open(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "open", Err: err}
	}
	defer reader.Close()

	log.Info().
		Str("file", cfg.FilePath).
		Str("sha256", sha).
		Str("mode", string(cfg.Mode)).
		Int64("rows", reader.NumRows()).
		Msg("starting classification pass")

	if err := parquetread.ValidateSchema(reader.Schema(), cfg.Mode); err != nil {
		return nil, &PipelineError{Phase: "validate", Err: err}
	}

	readStart := time.Now()
	raws, err := reader.ReadAll()
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}

	lines := make([]model.ClaimLine, len(raws))
	for i := range raws {
		line, err := normalize.ToClaimLine(&raws[i])
		if err != nil {
			return nil, &PipelineError{Phase: "normalize", Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
		lines[i] = *line
	}
	readDur := time.Since(readStart)

	classifier, err := buildClassifier(cfg, svc)
	if err != nil {
		return nil, &PipelineError{Phase: "classify", Err: err}
	}

	classifyStart := time.Now()
	outcomes, err := classifier.Classify(ctx, lines)
	if err != nil {
		return nil, &PipelineError{Phase: "classify", Err: err}
	}
	classifyDur := time.Since(classifyStart)

	writeStart := time.Now()
	flagCounts, err := writeFlagged(cfg, raws, outcomes)
	if err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}
	writeDur := time.Since(writeStart)

	summary := &model.RunSummary{
		RunID:            runID.String(),
		FilePath:         cfg.FilePath,
		FileSHA256:       sha,
		OutPath:          cfg.OutPath,
		Mode:             string(cfg.Mode),
		RowsRead:         int64(len(raws)),
		Cohorts:          int64(classify.CohortCount(cfg.Mode, lines)),
		FlagCounts:       flagCounts,
		DurationRead:     readDur,
		DurationClassify: classifyDur,
		DurationWrite:    writeDur,
		DurationTotal:    time.Since(totalStart),
	}

	ev := log.Info().
		Int64("rows", summary.RowsRead).
		Int64("cohorts", summary.Cohorts).
		Str("total_duration", summary.DurationTotal.String())
	for flag, n := range flagCounts {
		ev = ev.Int64("flag_"+flag, n)
	}
	ev.Msg("classification pass complete")

	return summary, nil
}

func buildClassifier(cfg *config.Config, svc lookup.Service) (classify.Classifier, error) {
	switch cfg.Mode {
	case classify.ModeTemporal, classify.ModeBinary:
		return &classify.Temporal{
			Binary:             cfg.Mode == classify.ModeBinary,
			PaidThresholdCents: cfg.PaidThresholdCents,
		}, nil
	case classify.ModeEditPair:
		if svc == nil {
			return nil, fmt.Errorf("edit-pair mode requires a lookup service")
		}
		return &classify.EditPair{Lookup: svc, Params: cfg.LookupParams()}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func writeFlagged(cfg *config.Config, raws []model.RawClaimRow, outcomes []classify.Outcome) (map[string]int64, error) {
	writer, err := parquetwrite.Create(cfg.OutPath)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	batch := make([]model.FlaggedClaimRow, 0, writeBatchSize)
	for i := range raws {
		row := classify.Render(&raws[i], &outcomes[i], cfg.Mode)
		counts[row.ProcCodeFlag]++
		batch = append(batch, row)
		if len(batch) == writeBatchSize {
			if _, err := writer.Write(batch); err != nil {
				writer.Close()
				return nil, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if _, err := writer.Write(batch); err != nil {
			writer.Close()
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return counts, nil
}
