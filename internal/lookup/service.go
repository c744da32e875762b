// Package lookup provides the reference lookup service: the external
// computation that, per encounter, intersects billed procedure codes with
// the NCCI procedure-to-procedure edit table in both directions.
package lookup

import (
	"context"
	"fmt"

	"github.com/gyeh/claimflag/internal/model"
)

// Params are the logical parameters of the edit-pair intersection query.
type Params struct {
	// LookbackMonths bounds the query to claims whose payment effective
	// date falls on or after the first of the month this many months ago.
	LookbackMonths int
	// MinPrimaryPaidCents is the exclusive paid floor for the reference-side line.
	MinPrimaryPaidCents int64
	// MinLinkedPaidCents is the inclusive paid floor for the target-side line.
	MinLinkedPaidCents int64
	// ProviderType restricts the edit table rows, e.g. "practitioner".
	ProviderType string
}

// DefaultParams matches the production selection query.
func DefaultParams() Params {
	return Params{
		LookbackMonths:      18,
		MinPrimaryPaidCents: 0,
		MinLinkedPaidCents:  7400,
		ProviderType:        "practitioner",
	}
}

// Service fetches the edit-pair intersection table, one row per encounter
// with at least one qualifying pair in both directions. Implementations
// must return a *ServiceError for any failure so callers can abort the
// pass rather than fall back to partial results.
type Service interface {
	Intersections(ctx context.Context, p Params) ([]model.EditPairIntersection, error)
}

// ServiceError is a fatal lookup failure: query execution failed, the poll
// budget ran out, or the result could not be decoded.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("lookup %s: %s", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Static is a canned intersection table, used in tests and offline runs.
type Static []model.EditPairIntersection

// Intersections returns the canned table unchanged.
func (s Static) Intersections(_ context.Context, _ Params) ([]model.EditPairIntersection, error) {
	return s, nil
}
