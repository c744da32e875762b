package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/normalize"
)

// editColumnAliases maps ref.ncci_ptp_edits columns to the header names
// they carry in published NCCI PTP files (column1/column2) and in our own
// exports.
var editColumnAliases = map[string][]string{
	"reference_code":     {"reference_code", "column1"},
	"target_code":        {"target_code", "column2"},
	"modifier_indicator": {"modifier_indicator", "modifier_filter"},
	"effective_date":     {"effective_date"},
	"deletion_date":      {"deletion_date"},
	"provider_type":      {"provider_type"},
}

// LoadEdits reads an NCCI procedure-to-procedure edits CSV and COPY-loads
// it into ref.ncci_ptp_edits.
func LoadEdits(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string) (int64, error) {
	start := time.Now()

	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("open edits file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read edits header: %w", err)
	}
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.ToLower(strings.TrimSpace(name))] = i
	}

	col := make(map[string]int, len(editColumnAliases))
	for target, aliases := range editColumnAliases {
		idx := -1
		for _, alias := range aliases {
			if i, ok := byName[alias]; ok {
				idx = i
				break
			}
		}
		if idx < 0 && target != "deletion_date" {
			return 0, fmt.Errorf("edits file missing column %q", target)
		}
		col[target] = idx
	}

	var rows [][]any
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read edits row: %w", err)
		}
		field := func(name string) string {
			i := col[name]
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		refCode := field("reference_code")
		targetCode := field("target_code")
		if refCode == "" || targetCode == "" {
			return 0, fmt.Errorf("edits row %d: empty code pair", line)
		}
		effective := normalize.ParseDate(field("effective_date"))
		if effective == nil {
			return 0, fmt.Errorf("edits row %d: bad effective_date %q", line, field("effective_date"))
		}
		modInd := field("modifier_indicator")
		if modInd == "" {
			modInd = "0"
		}

		rows = append(rows, []any{
			refCode,
			targetCode,
			modInd,
			*effective,
			normalize.ParseDate(field("deletion_date")),
			field("provider_type"),
		})
	}

	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ref", "ncci_ptp_edits"},
		[]string{"reference_code", "target_code", "modifier_indicator", "effective_date", "deletion_date", "provider_type"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("edits copy: %w", err)
	}

	log.Info().
		Int64("rows_loaded", n).
		Str("duration", time.Since(start).String()).
		Msg("edit table load complete")
	return n, nil
}
