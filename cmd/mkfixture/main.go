// mkfixture writes a small synthetic claims Parquet fixture exercising the
// interesting cohort shapes: distinct-date pairs, all-tied dates, below-
// threshold lines, null dates, and encounter clusters for the edit-pair path.
// Usage: go run ./cmd/mkfixture --out testdata/claims-small.parquet
package main

import (
	"flag"
	"fmt"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimflag/internal/model"
)

func str(s string) *string { return &s }

func i64(v int64) *int64 { return &v }

func line(member, code, paid, received string) model.RawClaimRow {
	return model.RawClaimRow{
		MemberMedicareID:  member,
		ProcedureCode:     code,
		Quantity:          str("1"),
		PlanPaidAmount:    str(paid),
		ClaimReceivedDate: str(received),
	}
}

func encounterLine(pcn, member, npi, svcDate, code, paid string) model.RawClaimRow {
	r := line(member, code, paid, "2024-03-01")
	r.PayerControlNumber = str(pcn)
	r.RenderingProviderNPI = str(npi)
	r.ServiceDate = str(svcDate)
	r.FirstServiceDate = str(svcDate)
	r.PaymentEffectiveDate = str(svcDate)
	r.IsFinalPaidIndicator = i64(1)
	return r
}

func main() {
	out := flag.String("out", "testdata/claims-small.parquet", "output parquet")
	flag.Parse()

	rows := []model.RawClaimRow{
		// Two-line cohort with distinct dates: reference then target.
		line("M1", "99213", "100.00", "2024-01-05"),
		line("M1", "99213", "100.00", "2024-02-10"),
		// Three lines all received the same day: all duplicates.
		line("M2", "99214", "120.00", "2024-01-01"),
		line("M2", "99214", "120.00", "2024-01-01"),
		line("M2", "99214", "120.00", "2024-01-01"),
		// Below the paid threshold: always other.
		line("M3", "99215", "50.00", "2024-01-15"),
		// Null received date paired with a dated line.
		line("M4", "97110", "90.00", ""),
		line("M4", "97110", "90.00", "2024-02-01"),
		// Encounter cluster for the edit-pair path.
		encounterLine("PCN100", "M5", "1234567890", "2024-02-20", "99213", "80.00"),
		encounterLine("PCN100", "M5", "1234567890", "2024-02-20", "99214", "76.00"),
		encounterLine("PCN100", "M5", "1234567890", "2024-02-20", "99215", "20.00"),
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	writer := goparquet.NewGenericWriter[model.RawClaimRow](f)
	if _, err := writer.Write(rows); err != nil {
		fmt.Fprintf(os.Stderr, "write rows: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), *out)
}
