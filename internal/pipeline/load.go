package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/db"
	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
	"github.com/gyeh/claimflag/internal/parquetread"
)

const readBatchSize = 1024

// Load streams rows from a claims Parquet file, normalizes them, and
// COPY-loads them into warehouse.claim_lines via a channel-backed
// CopyFromSource. Unlike a classification pass, a warehouse load tolerates
// bad rows: they are rejected and logged, not fatal.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string) (*model.LoadSummary, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("load hash: %w", err)
	}

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("load open: %w", err)
	}
	defer reader.Close()

	batchID := uuid.New()
	ch := make(chan *model.WarehouseRow, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64

	// Producer goroutine: read Parquet → normalize → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.RawClaimRow, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++

				row, normErr := normalize.ToWarehouseRow(&buf[i], batchID, rowNum)
				if normErr != nil {
					rowsRejected++
					log.Warn().Err(normErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}

				select {
				case ch <- row:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into the warehouse table
	source := db.NewChannelSource(ch)
	rowsLoaded, err := pool.CopyFrom(ctx,
		pgx.Identifier{"warehouse", "claim_lines"},
		model.WarehouseColumns(),
		source,
	)

	// Wait for producer to finish
	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("load producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("load copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("load_batch_id", batchID.String()).
		Int64("rows_read", rowsRead).
		Int64("rows_loaded", rowsLoaded).
		Int64("rows_rejected", rowsRejected).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsLoaded)/dur.Seconds()).
		Msg("warehouse load complete")

	return &model.LoadSummary{
		FilePath:     filePath,
		FileSHA256:   sha,
		LoadBatchID:  batchID.String(),
		RowsRead:     rowsRead,
		RowsLoaded:   rowsLoaded,
		RowsRejected: rowsRejected,
		Duration:     dur,
	}, nil
}
