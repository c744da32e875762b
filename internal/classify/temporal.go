package classify

import (
	"context"
	"sort"
	"time"

	"github.com/gyeh/claimflag/internal/model"
)

// DefaultPaidThresholdCents is the paid floor a line must exceed to
// participate in temporal duplicate detection: $75.
const DefaultPaidThresholdCents int64 = 7500

// Temporal flags duplicate-suspected claim lines within cohorts sharing
// member + procedure + modifiers + quantity, ordered by received date.
//
// Null received dates sort before every real date; two null dates compare
// equal. That placement decides which line becomes reference vs target when
// dates are missing, so it is pinned by tests and must not change casually.
type Temporal struct {
	// Binary selects the legacy flagging: every survivor of a 2+ cohort is
	// flagged as a duplicate suspect and rendered 1, everything else 0.
	Binary bool
	// PaidThresholdCents defaults to DefaultPaidThresholdCents when zero.
	PaidThresholdCents int64
}

// Classify assigns an Outcome per line. Lines failing the paid filter, and
// cohorts with fewer than two survivors, keep FlagOther.
func (c *Temporal) Classify(_ context.Context, lines []model.ClaimLine) ([]Outcome, error) {
	threshold := c.PaidThresholdCents
	if threshold == 0 {
		threshold = DefaultPaidThresholdCents
	}

	out := make([]Outcome, len(lines))
	for i := range out {
		out[i].Flag = FlagOther
	}

	for _, cohort := range groupTemporal(lines) {
		c.classifyCohort(lines, cohort, threshold, out)
	}
	return out, nil
}

func (c *Temporal) classifyCohort(lines []model.ClaimLine, cohort []int, threshold int64, out []Outcome) {
	survivors := make([]int, 0, len(cohort))
	for _, i := range cohort {
		if lines[i].PaidCents > threshold {
			survivors = append(survivors, i)
		}
	}
	if len(survivors) < 2 {
		return
	}

	// Sort ascending by received date, nulls first. Stable so equal dates
	// keep input order, though equal dates always get equal flags.
	sort.SliceStable(survivors, func(a, b int) bool {
		return dateLess(lines[survivors[a]].ReceivedDate, lines[survivors[b]].ReceivedDate)
	})

	if c.Binary {
		for _, i := range survivors {
			out[i].Flag = FlagDuplicate
		}
		return
	}

	first := lines[survivors[0]].ReceivedDate
	last := lines[survivors[len(survivors)-1]].ReceivedDate

	if dateEqual(first, last) {
		// Every survivor shares one date: all duplicates, no reference/target.
		for _, i := range survivors {
			out[i].Flag = FlagDuplicate
			out[i].TargetCode = &lines[i].ProcedureCode
		}
		return
	}

	for _, i := range survivors {
		d := lines[i].ReceivedDate
		switch {
		case dateEqual(d, first):
			out[i].Flag = FlagReference
		case dateEqual(d, last):
			out[i].Flag = FlagTarget
			out[i].TargetCode = &lines[i].ProcedureCode
		default:
			out[i].Flag = FlagOther
		}
	}
}

// dateLess orders nullable dates with nil before every real date.
func dateLess(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

// dateEqual treats two nil dates as equal.
func dateEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

var _ Classifier = (*Temporal)(nil)
