package model

// RawClaimRow mirrors the Parquet schema of a claims extract. Numeric-looking
// fields arrive as strings because upstream extracts are typed loosely; they
// get parsed during normalization. Which columns must be present depends on
// the classification path and is enforced by parquetread.ValidateSchema.
type RawClaimRow struct {
	MemberMedicareID string  `parquet:"member_medicare_id"`
	ProcedureCode    string  `parquet:"procedure_code"`
	ProcModifier     *string `parquet:"proc_modifier,optional"`
	ProcModifier2    *string `parquet:"proc_modifier2,optional"`
	ProcModifier4    *string `parquet:"proc_modifier4,optional"`
	ProcModifier5    *string `parquet:"proc_modifier5,optional"`
	Quantity         *string `parquet:"quantity,optional"`

	PlanPaidAmount    *string `parquet:"plan_paid_amount,optional"`
	ClaimReceivedDate *string `parquet:"claim_received_date,optional"`

	// Encounter identity (edit-pair path)
	PayerControlNumber   *string `parquet:"payer_control_number,optional"`
	ServiceDate          *string `parquet:"service_date,optional"`
	RenderingProviderNPI *string `parquet:"rendering_provider_npi,optional"`

	// Warehouse-only columns, ignored by the classifiers but carried into
	// warehouse.claim_lines by the load command.
	BillTypeCode         *string `parquet:"bill_type_code,optional"`
	FirstServiceDate     *string `parquet:"first_service_date,optional"`
	PaymentEffectiveDate *string `parquet:"payment_effective_date,optional"`
	IsFinalPaidIndicator *int64  `parquet:"is_final_paid_indicator,optional"`
}

// FlaggedClaimRow is the output row: every input column echoed, plus the
// assigned flag. TargetCode is set when the flag is target or duplicate.
// The two intersect columns echo the lookup result (edit-pair path only) in
// the same bracketed text form the lookup service emits.
type FlaggedClaimRow struct {
	MemberMedicareID string  `parquet:"member_medicare_id"`
	ProcedureCode    string  `parquet:"procedure_code"`
	ProcModifier     *string `parquet:"proc_modifier,optional"`
	ProcModifier2    *string `parquet:"proc_modifier2,optional"`
	ProcModifier4    *string `parquet:"proc_modifier4,optional"`
	ProcModifier5    *string `parquet:"proc_modifier5,optional"`
	Quantity         *string `parquet:"quantity,optional"`

	PlanPaidAmount    *string `parquet:"plan_paid_amount,optional"`
	ClaimReceivedDate *string `parquet:"claim_received_date,optional"`

	PayerControlNumber   *string `parquet:"payer_control_number,optional"`
	ServiceDate          *string `parquet:"service_date,optional"`
	RenderingProviderNPI *string `parquet:"rendering_provider_npi,optional"`

	ProcCodeFlag    string  `parquet:"proc_code_flag"`
	TargetCode      *string `parquet:"target_code,optional"`
	RefIntersect    *string `parquet:"ref_intersect,optional"`
	TargetIntersect *string `parquet:"target_intersect,optional"`
}
