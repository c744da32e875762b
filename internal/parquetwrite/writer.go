// Package parquetwrite writes flagged claim rows back out as Parquet.
package parquetwrite

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimflag/internal/model"
)

// Writer streams FlaggedClaimRows into a Snappy-compressed Parquet file.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[model.FlaggedClaimRow]
	count  int64
}

// Create opens the output file and prepares a writer.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := parquet.NewGenericWriter[model.FlaggedClaimRow](f,
		parquet.Compression(&parquet.Snappy),
	)
	return &Writer{file: f, writer: w}, nil
}

// Write appends rows to the output file.
func (w *Writer) Write(rows []model.FlaggedClaimRow) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += int64(n)
	if err != nil {
		return n, fmt.Errorf("write flagged rows: %w", err)
	}
	return n, nil
}

// Count returns the number of rows written so far.
func (w *Writer) Count() int64 {
	return w.count
}

// Close flushes the Parquet footer and closes the file.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}
