package classify

import (
	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
)

// Render maps one classified line back onto an output row. It is a pure
// function applied after classification: the raw input columns are echoed
// unchanged, then the flag columns derived from the Outcome are attached.
// In binary mode the flag renders as "1" for duplicate suspects and "0"
// for everything else, with no target code.
func Render(raw *model.RawClaimRow, out *Outcome, mode Mode) model.FlaggedClaimRow {
	row := model.FlaggedClaimRow{
		MemberMedicareID:     raw.MemberMedicareID,
		ProcedureCode:        raw.ProcedureCode,
		ProcModifier:         raw.ProcModifier,
		ProcModifier2:        raw.ProcModifier2,
		ProcModifier4:        raw.ProcModifier4,
		ProcModifier5:        raw.ProcModifier5,
		Quantity:             raw.Quantity,
		PlanPaidAmount:       raw.PlanPaidAmount,
		ClaimReceivedDate:    raw.ClaimReceivedDate,
		PayerControlNumber:   raw.PayerControlNumber,
		ServiceDate:          raw.ServiceDate,
		RenderingProviderNPI: raw.RenderingProviderNPI,
	}

	if mode == ModeBinary {
		if out.Flag == FlagDuplicate {
			row.ProcCodeFlag = "1"
		} else {
			row.ProcCodeFlag = "0"
		}
		return row
	}

	row.ProcCodeFlag = string(out.Flag)
	row.TargetCode = out.TargetCode
	if out.RefIntersect != nil {
		s := normalize.FormatCodeList(out.RefIntersect)
		row.RefIntersect = &s
	}
	if out.TargetIntersect != nil {
		s := normalize.FormatCodeList(out.TargetIntersect)
		row.TargetIntersect = &s
	}
	return row
}
