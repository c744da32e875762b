package model

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseRow is the normalized, DB-ready representation of a claim line
// destined for warehouse.claim_lines. Money is int64 cents.
type WarehouseRow struct {
	LoadBatchID     uuid.UUID
	SourceRowNumber int64

	PayerControlNumber   *string
	MemberMedicareID     string
	ProcedureCode        string
	ProcModifier         string
	ProcModifier2        string
	ProcModifier4        string
	ProcModifier5        string
	Quantity             *float64
	PlanPaidCents        int64
	ClaimReceivedDate    *time.Time
	ServiceDate          *string
	FirstServiceDate     *time.Time
	PaymentEffectiveDate *time.Time
	RenderingProviderNPI *string
	BillTypeCode         *string
	IsFinalPaid          bool
}

// WarehouseColumns returns the ordered column names for COPY into
// warehouse.claim_lines.
func WarehouseColumns() []string {
	return []string{
		"load_batch_id",
		"source_row_number",
		"payer_control_number",
		"member_medicare_id",
		"procedure_code",
		"proc_modifier",
		"proc_modifier2",
		"proc_modifier4",
		"proc_modifier5",
		"quantity",
		"plan_paid_amount_cents",
		"claim_received_date",
		"service_date",
		"first_service_date",
		"payment_effective_date",
		"rendering_provider_npi",
		"bill_type_code",
		"is_final_paid",
	}
}

// CopyValues returns the row values in the same order as WarehouseColumns(),
// suitable for pgx CopyFromSource.
func (r *WarehouseRow) CopyValues() []any {
	return []any{
		r.LoadBatchID,
		r.SourceRowNumber,
		r.PayerControlNumber,
		r.MemberMedicareID,
		r.ProcedureCode,
		r.ProcModifier,
		r.ProcModifier2,
		r.ProcModifier4,
		r.ProcModifier5,
		r.Quantity,
		r.PlanPaidCents,
		r.ClaimReceivedDate,
		r.ServiceDate,
		r.FirstServiceDate,
		r.PaymentEffectiveDate,
		r.RenderingProviderNPI,
		r.BillTypeCode,
		r.IsFinalPaid,
	}
}
