package model

import "time"

// ClaimLine is the normalized, comparable form of one billed procedure line.
// String fields are trimmed; modifiers are trimmed and lower-cased, with ""
// standing for an absent modifier. Money is int64 cents.
type ClaimLine struct {
	MemberID      string
	ProcedureCode string
	Modifiers     [4]string
	Quantity      *float64
	PaidCents     int64

	// ReceivedDate is nil when the source value was absent or unparseable.
	ReceivedDate *time.Time

	// Encounter identity, used only by the edit-pair path. ServiceDate is
	// kept as a trimmed string so it joins against the lookup result the
	// same way the warehouse query groups it.
	PayerControlNumber   string
	ServiceDate          string
	RenderingProviderNPI string
}

// EncounterKey identifies one clinical visit. A zero-value component ("")
// stands for a null source field and is a distinct key value of its own.
type EncounterKey struct {
	PayerControlNumber   string
	MemberID             string
	ServiceDate          string
	RenderingProviderNPI string
}

// Encounter returns the line's encounter grouping key.
func (l *ClaimLine) Encounter() EncounterKey {
	return EncounterKey{
		PayerControlNumber:   l.PayerControlNumber,
		MemberID:             l.MemberID,
		ServiceDate:          l.ServiceDate,
		RenderingProviderNPI: l.RenderingProviderNPI,
	}
}
