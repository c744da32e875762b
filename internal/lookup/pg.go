package lookup

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
	embedsql "github.com/gyeh/claimflag/internal/sql"
)

// PGService runs the edit-pair intersection query directly against the
// claims warehouse.
type PGService struct {
	Pool *pgxpool.Pool
	Log  zerolog.Logger

	// Now is the clock used to resolve the lookback window; nil means
	// time.Now. Tests pin it.
	Now func() time.Time
}

// Intersections executes the embedded intersection SQL and scans one
// EditPairIntersection per encounter row.
func (s *PGService) Intersections(ctx context.Context, p Params) ([]model.EditPairIntersection, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	lookback := normalize.LookbackStart(now(), p.LookbackMonths)

	start := time.Now()
	rows, err := s.Pool.Query(ctx, embedsql.EditPairIntersect,
		lookback, p.MinPrimaryPaidCents, p.MinLinkedPaidCents, p.ProviderType)
	if err != nil {
		return nil, &ServiceError{Op: "query", Err: err}
	}
	defer rows.Close()

	var out []model.EditPairIntersection
	for rows.Next() {
		var (
			pcn, npi, svcDate *string
			memberID          string
			refCodes          []string
			targetCodes       []string
		)
		if err := rows.Scan(&pcn, &memberID, &npi, &svcDate, &refCodes, &targetCodes); err != nil {
			return nil, &ServiceError{Op: "scan", Err: err}
		}
		out = append(out, model.EditPairIntersection{
			Key: model.EncounterKey{
				PayerControlNumber:   deref(pcn),
				MemberID:             memberID,
				ServiceDate:          deref(svcDate),
				RenderingProviderNPI: deref(npi),
			},
			ReferenceCodes: refCodes,
			TargetCodes:    targetCodes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &ServiceError{Op: "read rows", Err: err}
	}

	s.Log.Info().
		Int("encounters", len(out)).
		Str("lookback_start", lookback.Format("2006-01-02")).
		Str("duration", time.Since(start).String()).
		Msg("edit-pair intersections computed")
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ Service = (*PGService)(nil)
