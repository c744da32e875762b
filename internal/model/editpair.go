package model

// EditPairIntersection is one row of the reference lookup result: for a
// single encounter, the procedure codes billed there that appear on the
// reference side of an NCCI PTP edit, and those that appear on the target
// side. Either set may be empty. The engine never mutates these.
type EditPairIntersection struct {
	Key            EncounterKey
	ReferenceCodes []string
	TargetCodes    []string
}
