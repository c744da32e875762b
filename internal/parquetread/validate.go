package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimflag/internal/classify"
)

// SchemaError reports a required input column missing from the Parquet
// schema. It is fatal for the whole batch and is raised before any row is
// processed.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// temporalColumns are required by the temporal and binary paths.
var temporalColumns = []string{
	"member_medicare_id",
	"procedure_code",
	"proc_modifier",
	"proc_modifier2",
	"proc_modifier4",
	"proc_modifier5",
	"quantity",
	"plan_paid_amount",
	"claim_received_date",
}

// encounterColumns are required by the edit-pair path.
var encounterColumns = []string{
	"payer_control_number",
	"member_medicare_id",
	"service_date",
	"rendering_provider_npi",
	"procedure_code",
}

// RequiredColumns returns the input columns the given mode depends on.
func RequiredColumns(mode classify.Mode) []string {
	if mode == classify.ModeEditPair {
		return encounterColumns
	}
	return temporalColumns
}

// ValidateSchema checks that the Parquet schema carries every column the
// selected mode needs, returning a *SchemaError for the first one missing.
func ValidateSchema(schema *parquet.Schema, mode classify.Mode) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	for _, col := range RequiredColumns(mode) {
		if !columns[col] {
			return &SchemaError{Column: col}
		}
	}
	return nil
}
