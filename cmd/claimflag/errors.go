package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/exitcode"
	"github.com/gyeh/claimflag/internal/lookup"
	"github.com/gyeh/claimflag/internal/parquetread"
	"github.com/gyeh/claimflag/internal/pipeline"
)

// exitPipelineError logs a pipeline failure and exits with the code its
// failure class maps to, so callers can tell a bad input table from a
// failed reference fetch.
func exitPipelineError(log zerolog.Logger, err error) {
	code := exitcode.ClassifyError

	var schemaErr *parquetread.SchemaError
	var lookupErr *lookup.ServiceError
	switch {
	case errors.As(err, &schemaErr):
		code = exitcode.ValidationError
	case errors.As(err, &lookupErr):
		code = exitcode.LookupError
	}

	ev := log.Error().Err(err)
	var pe *pipeline.PipelineError
	if errors.As(err, &pe) {
		ev = ev.Str("phase", pe.Phase)
	}
	ev.Msg("classification failed")
	os.Exit(code)
}
