package classify

import (
	"strconv"

	"github.com/gyeh/claimflag/internal/model"
)

// temporalKey is the grouping key of the temporal path: member + procedure
// + modifiers + quantity. Quantity is rendered to a canonical string with a
// sentinel for null so a missing quantity is a distinct key value that can
// never collide with a real one.
type temporalKey struct {
	memberID      string
	procedureCode string
	modifiers     [4]string
	quantity      string
}

const nullQuantity = "\x00null"

func quantityKey(q *float64) string {
	if q == nil {
		return nullQuantity
	}
	return strconv.FormatFloat(*q, 'g', -1, 64)
}

func temporalKeyOf(l *model.ClaimLine) temporalKey {
	return temporalKey{
		memberID:      l.MemberID,
		procedureCode: l.ProcedureCode,
		modifiers:     l.Modifiers,
		quantity:      quantityKey(l.Quantity),
	}
}

// groupTemporal partitions lines into cohorts by temporal key. Every line
// lands in exactly one cohort; values are indices into the input slice, in
// input order. Grouping never filters; low-value lines are the
// classifier's concern.
func groupTemporal(lines []model.ClaimLine) map[temporalKey][]int {
	cohorts := make(map[temporalKey][]int)
	for i := range lines {
		k := temporalKeyOf(&lines[i])
		cohorts[k] = append(cohorts[k], i)
	}
	return cohorts
}

// groupEncounter partitions lines into cohorts by encounter identity.
func groupEncounter(lines []model.ClaimLine) map[model.EncounterKey][]int {
	cohorts := make(map[model.EncounterKey][]int)
	for i := range lines {
		k := lines[i].Encounter()
		cohorts[k] = append(cohorts[k], i)
	}
	return cohorts
}

// CohortCount reports how many cohorts the mode's grouping key yields,
// for run summaries and dry-run stats.
func CohortCount(mode Mode, lines []model.ClaimLine) int {
	if mode == ModeEditPair {
		return len(groupEncounter(lines))
	}
	return len(groupTemporal(lines))
}
