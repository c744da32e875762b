package classify

import (
	"context"
	"fmt"

	"github.com/gyeh/claimflag/internal/lookup"
	"github.com/gyeh/claimflag/internal/model"
)

// EditPair flags claim lines by membership in the externally computed
// edit-pair intersection sets for their encounter. No temporal ordering:
// the reference/target roles come entirely from the lookup result.
type EditPair struct {
	Lookup lookup.Service
	Params lookup.Params
}

// Classify fetches the intersection table once for the batch, then flags
// each line by exact-string membership: reference wins over target when a
// code appears in both sets. An encounter absent from the lookup result
// means empty sets, not an error; every line there flags other.
func (c *EditPair) Classify(ctx context.Context, lines []model.ClaimLine) ([]Outcome, error) {
	inter, err := c.Lookup.Intersections(ctx, c.Params)
	if err != nil {
		return nil, fmt.Errorf("fetch edit-pair intersections: %w", err)
	}

	idx := make(map[model.EncounterKey]*intersectSets, len(inter))
	for i := range inter {
		idx[inter[i].Key] = newIntersectSets(&inter[i])
	}

	out := make([]Outcome, len(lines))
	for i := range lines {
		line := &lines[i]
		sets := idx[line.Encounter()]
		if sets == nil {
			out[i].Flag = FlagOther
			continue
		}
		out[i].RefIntersect = sets.refCodes
		out[i].TargetIntersect = sets.targetCodes
		switch {
		case sets.ref[line.ProcedureCode]:
			out[i].Flag = FlagReference
		case sets.target[line.ProcedureCode]:
			out[i].Flag = FlagTarget
			out[i].TargetCode = &line.ProcedureCode
		default:
			out[i].Flag = FlagOther
		}
	}
	return out, nil
}

// intersectSets is one lookup row with its code lists indexed for
// membership checks.
type intersectSets struct {
	refCodes    []string
	targetCodes []string
	ref         map[string]bool
	target      map[string]bool
}

func newIntersectSets(row *model.EditPairIntersection) *intersectSets {
	s := &intersectSets{
		refCodes:    row.ReferenceCodes,
		targetCodes: row.TargetCodes,
		ref:         make(map[string]bool, len(row.ReferenceCodes)),
		target:      make(map[string]bool, len(row.TargetCodes)),
	}
	for _, c := range row.ReferenceCodes {
		s.ref[c] = true
	}
	for _, c := range row.TargetCodes {
		s.target[c] = true
	}
	return s
}

var _ Classifier = (*EditPair)(nil)
