// Package classify turns normalized claim lines into per-line flags that
// mark suspected duplicate or improperly split procedure billing.
package classify

import (
	"context"

	"github.com/gyeh/claimflag/internal/model"
)

// Mode selects the classification strategy.
type Mode string

const (
	// ModeBinary is the legacy temporal flagger: 1 for any survivor of a
	// duplicate-suspected cohort, 0 otherwise.
	ModeBinary Mode = "binary"
	// ModeTemporal is the multi-state temporal flagger
	// (reference/target/duplicate/other).
	ModeTemporal Mode = "temporal"
	// ModeEditPair flags by membership in externally computed edit-pair
	// intersection sets per encounter.
	ModeEditPair Mode = "editpair"
)

// Flag is the categorical classification outcome for one claim line.
type Flag string

const (
	FlagReference Flag = "reference"
	FlagTarget    Flag = "target"
	FlagDuplicate Flag = "duplicate"
	FlagOther     Flag = "other"
)

// Outcome is the classification result for one claim line, index-aligned
// with the classifier's input. TargetCode echoes the line's own procedure
// code exactly when the flag is target or duplicate. The intersect fields
// echo the lookup row's code sets on the edit-pair path and are nil
// otherwise.
type Outcome struct {
	Flag            Flag
	TargetCode      *string
	RefIntersect    []string
	TargetIntersect []string
}

// Classifier assigns one Outcome per input line. Implementations never
// drop or reorder lines: out[i] is the outcome for lines[i]. A line that
// never qualifies for any cluster keeps FlagOther.
type Classifier interface {
	Classify(ctx context.Context, lines []model.ClaimLine) ([]Outcome, error)
}
