package classify

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/gyeh/claimflag/internal/model"
)

// tline builds a temporal-path claim line; date "" means a null received date.
func tline(member, code string, paidCents int64, date string) model.ClaimLine {
	l := model.ClaimLine{
		MemberID:      member,
		ProcedureCode: code,
		PaidCents:     paidCents,
	}
	q := 1.0
	l.Quantity = &q
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		l.ReceivedDate = &d
	}
	return l
}

func classifyTemporal(t *testing.T, binary bool, lines []model.ClaimLine) []Outcome {
	t.Helper()
	c := &Temporal{Binary: binary}
	out, err := c.Classify(context.Background(), lines)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(out) != len(lines) {
		t.Fatalf("got %d outcomes for %d lines", len(out), len(lines))
	}
	return out
}

func flags(out []Outcome) []Flag {
	fs := make([]Flag, len(out))
	for i := range out {
		fs[i] = out[i].Flag
	}
	return fs
}

func TestTemporal_TwoDistinctDates(t *testing.T) {
	// Scenario: two lines paid 100 on 2024-01-05 and 2024-02-10.
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, "2024-02-10"),
	}
	out := classifyTemporal(t, false, lines)

	if out[0].Flag != FlagReference {
		t.Errorf("earlier line: got %s, want reference", out[0].Flag)
	}
	if out[1].Flag != FlagTarget {
		t.Errorf("later line: got %s, want target", out[1].Flag)
	}
	if out[0].TargetCode != nil {
		t.Errorf("reference line should have nil target code, got %q", *out[0].TargetCode)
	}
	if out[1].TargetCode == nil || *out[1].TargetCode != "99213" {
		t.Errorf("target line: got target code %v, want 99213", out[1].TargetCode)
	}
}

func TestTemporal_AllSameDate(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-01"),
		tline("M1", "99213", 10000, "2024-01-01"),
		tline("M1", "99213", 10000, "2024-01-01"),
	}
	out := classifyTemporal(t, false, lines)

	for i := range out {
		if out[i].Flag != FlagDuplicate {
			t.Errorf("line %d: got %s, want duplicate", i, out[i].Flag)
		}
		if out[i].TargetCode == nil || *out[i].TargetCode != "99213" {
			t.Errorf("line %d: target code %v, want 99213", i, out[i].TargetCode)
		}
	}
}

func TestTemporal_ThreeDistinctDates(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-02-01"),
		tline("M1", "99213", 10000, "2024-01-01"),
		tline("M1", "99213", 10000, "2024-03-01"),
	}
	out := classifyTemporal(t, false, lines)

	want := []Flag{FlagOther, FlagReference, FlagTarget}
	if !reflect.DeepEqual(flags(out), want) {
		t.Errorf("got %v, want %v", flags(out), want)
	}
}

func TestTemporal_PaidFilter(t *testing.T) {
	// A single qualifying line and one at exactly the threshold: nobody
	// clusters. The threshold is strict: paid must exceed $75.
	lines := []model.ClaimLine{
		tline("M1", "99213", 5000, "2024-01-01"),
		tline("M1", "99213", 7500, "2024-01-02"),
		tline("M1", "99213", 10000, "2024-01-03"),
	}
	out := classifyTemporal(t, false, lines)

	for i := range out {
		if out[i].Flag != FlagOther {
			t.Errorf("line %d: got %s, want other", i, out[i].Flag)
		}
	}
}

func TestTemporal_FilteredLineExcludedFromOrdering(t *testing.T) {
	// The $50 line is received earliest but must not become the reference.
	lines := []model.ClaimLine{
		tline("M1", "99213", 5000, "2023-12-01"),
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, "2024-02-10"),
	}
	out := classifyTemporal(t, false, lines)

	want := []Flag{FlagOther, FlagReference, FlagTarget}
	if !reflect.DeepEqual(flags(out), want) {
		t.Errorf("got %v, want %v", flags(out), want)
	}
}

func TestTemporal_NullDatesSortFirst(t *testing.T) {
	// Pinned policy: a null received date orders before every real date,
	// so the dateless line is the reference and the dated one the target.
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, ""),
	}
	out := classifyTemporal(t, false, lines)

	if out[0].Flag != FlagTarget {
		t.Errorf("dated line: got %s, want target", out[0].Flag)
	}
	if out[1].Flag != FlagReference {
		t.Errorf("dateless line: got %s, want reference", out[1].Flag)
	}
}

func TestTemporal_AllNullDatesAreDuplicates(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, ""),
		tline("M1", "99213", 10000, ""),
	}
	out := classifyTemporal(t, false, lines)

	for i := range out {
		if out[i].Flag != FlagDuplicate {
			t.Errorf("line %d: got %s, want duplicate", i, out[i].Flag)
		}
	}
}

func TestTemporal_SeparateCohortsDoNotCluster(t *testing.T) {
	// Same member and code but different quantity and modifiers: three
	// distinct cohorts of one line each.
	a := tline("M1", "99213", 10000, "2024-01-01")
	b := tline("M1", "99213", 10000, "2024-01-02")
	q := 2.0
	b.Quantity = &q
	c := tline("M1", "99213", 10000, "2024-01-03")
	c.Modifiers = [4]string{"gp", "", "", ""}

	out := classifyTemporal(t, false, []model.ClaimLine{a, b, c})
	for i := range out {
		if out[i].Flag != FlagOther {
			t.Errorf("line %d: got %s, want other", i, out[i].Flag)
		}
	}
}

func TestTemporal_NullQuantityIsItsOwnCohort(t *testing.T) {
	a := tline("M1", "99213", 10000, "2024-01-01")
	a.Quantity = nil
	b := tline("M1", "99213", 10000, "2024-01-02")
	b.Quantity = nil

	out := classifyTemporal(t, false, []model.ClaimLine{a, b})
	if out[0].Flag != FlagReference || out[1].Flag != FlagTarget {
		t.Errorf("null-quantity cohort should still cluster, got %v", flags(out))
	}
}

func TestTemporal_BinaryMode(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, "2024-02-10"),
		tline("M2", "99214", 10000, "2024-01-05"),
		tline("M3", "99215", 5000, "2024-01-05"),
	}
	out := classifyTemporal(t, true, lines)

	want := []Flag{FlagDuplicate, FlagDuplicate, FlagOther, FlagOther}
	if !reflect.DeepEqual(flags(out), want) {
		t.Errorf("got %v, want %v", flags(out), want)
	}
	for i := range out {
		if out[i].TargetCode != nil {
			t.Errorf("binary mode should not set target codes, line %d has %q", i, *out[i].TargetCode)
		}
	}
}

func TestTemporal_Idempotent(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, "2024-02-10"),
		tline("M2", "99214", 12000, "2024-01-01"),
		tline("M2", "99214", 12000, "2024-01-01"),
		tline("M3", "99215", 5000, "2024-01-15"),
	}
	first := classifyTemporal(t, false, lines)
	second := classifyTemporal(t, false, lines)
	if !reflect.DeepEqual(first, second) {
		t.Error("classification is not idempotent")
	}
}

func TestTemporal_ShuffleInvariant(t *testing.T) {
	lines := []model.ClaimLine{
		tline("M1", "99213", 10000, "2024-01-05"),
		tline("M1", "99213", 10000, "2024-02-10"),
		tline("M1", "99213", 10000, "2024-01-20"),
		tline("M2", "99214", 12000, "2024-01-01"),
		tline("M2", "99214", 12000, "2024-01-01"),
		tline("M3", "99215", 5000, "2024-01-15"),
		tline("M4", "97110", 9000, ""),
		tline("M4", "97110", 9000, "2024-02-01"),
	}
	base := classifyTemporal(t, false, lines)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		perm := rng.Perm(len(lines))
		shuffled := make([]model.ClaimLine, len(lines))
		for i, p := range perm {
			shuffled[i] = lines[p]
		}
		got := classifyTemporal(t, false, shuffled)
		for i, p := range perm {
			if got[i].Flag != base[p].Flag {
				t.Fatalf("trial %d: line %d flag changed after shuffle: %s != %s",
					trial, p, got[i].Flag, base[p].Flag)
			}
		}
	}
}
