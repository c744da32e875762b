package normalize

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gyeh/claimflag/internal/model"
)

// ToClaimLine converts a raw Parquet claim row into a normalized ClaimLine.
// Pure: no side effects beyond the returned value. Unparseable dates and
// quantities become nil; an empty procedure code or an unparseable paid
// amount is an error that fails the whole pass.
func ToClaimLine(row *model.RawClaimRow) (*model.ClaimLine, error) {
	code := Code(row.ProcedureCode)
	if code == "" {
		return nil, fmt.Errorf("empty procedure_code")
	}

	l := &model.ClaimLine{
		MemberID:      Ident(&row.MemberMedicareID),
		ProcedureCode: code,
		Modifiers: [4]string{
			Modifier(row.ProcModifier),
			Modifier(row.ProcModifier2),
			Modifier(row.ProcModifier4),
			Modifier(row.ProcModifier5),
		},
		Quantity:     ParseQuantity(row.Quantity),
		ReceivedDate: ParseDateOpt(row.ClaimReceivedDate),

		PayerControlNumber:   Ident(row.PayerControlNumber),
		ServiceDate:          Ident(row.ServiceDate),
		RenderingProviderNPI: Ident(row.RenderingProviderNPI),
	}

	if row.PlanPaidAmount != nil {
		cents, err := ParseCents(*row.PlanPaidAmount)
		if err != nil {
			return nil, err
		}
		l.PaidCents = cents
	}

	return l, nil
}

// ToWarehouseRow converts a raw Parquet claim row into a warehouse.claim_lines
// row for COPY loading.
func ToWarehouseRow(row *model.RawClaimRow, batchID uuid.UUID, rowNum int64) (*model.WarehouseRow, error) {
	line, err := ToClaimLine(row)
	if err != nil {
		return nil, err
	}

	w := &model.WarehouseRow{
		LoadBatchID:     batchID,
		SourceRowNumber: rowNum,

		PayerControlNumber:   optStr(line.PayerControlNumber),
		MemberMedicareID:     line.MemberID,
		ProcedureCode:        line.ProcedureCode,
		ProcModifier:         line.Modifiers[0],
		ProcModifier2:        line.Modifiers[1],
		ProcModifier4:        line.Modifiers[2],
		ProcModifier5:        line.Modifiers[3],
		Quantity:             line.Quantity,
		PlanPaidCents:        line.PaidCents,
		ClaimReceivedDate:    line.ReceivedDate,
		ServiceDate:          optStr(line.ServiceDate),
		FirstServiceDate:     ParseDateOpt(row.FirstServiceDate),
		PaymentEffectiveDate: ParseDateOpt(row.PaymentEffectiveDate),
		RenderingProviderNPI: optStr(line.RenderingProviderNPI),
		BillTypeCode:         row.BillTypeCode,
		IsFinalPaid:          row.IsFinalPaidIndicator != nil && *row.IsFinalPaidIndicator == 1,
	}

	return w, nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
