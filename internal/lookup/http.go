package lookup

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/model"
	"github.com/gyeh/claimflag/internal/normalize"
)

// Query lifecycle states reported by the remote service.
const (
	stateSucceeded = "SUCCEEDED"
	stateFailed    = "FAILED"
	stateCancelled = "CANCELLED"
)

// HTTPService talks to a remote analytical query service: submit the
// intersection query, poll for completion, then fetch the result CSV.
// The poll is bounded by PollTimeout; exhausting it is a terminal
// ServiceError, since a pass has no intermediate state to resume from.
type HTTPService struct {
	BaseURL      string
	Client       *http.Client
	PollInterval time.Duration
	PollTimeout  time.Duration
	Log          zerolog.Logger
}

// NewHTTPService returns an HTTPService with sane polling defaults.
func NewHTTPService(baseURL string, log zerolog.Logger) *HTTPService {
	return &HTTPService{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Client:       &http.Client{Timeout: 30 * time.Second},
		PollInterval: 2 * time.Second,
		PollTimeout:  10 * time.Minute,
		Log:          log,
	}
}

type submitRequest struct {
	LookbackMonths      int    `json:"lookback_months"`
	MinPrimaryPaidCents int64  `json:"min_primary_paid_cents"`
	MinLinkedPaidCents  int64  `json:"min_linked_paid_cents"`
	ProviderType        string `json:"provider_type"`
}

type submitResponse struct {
	QueryID string `json:"query_id"`
}

type statusResponse struct {
	State     string `json:"state"`
	Reason    string `json:"reason"`
	ResultURL string `json:"result_url"`
}

// Intersections submits the query, polls until a terminal state, and
// decodes the result CSV.
func (s *HTTPService) Intersections(ctx context.Context, p Params) ([]model.EditPairIntersection, error) {
	queryID, err := s.submit(ctx, p)
	if err != nil {
		return nil, &ServiceError{Op: "submit", Err: err}
	}
	s.Log.Info().Str("query_id", queryID).Msg("edit-pair query submitted")

	status, err := s.poll(ctx, queryID)
	if err != nil {
		return nil, &ServiceError{Op: "poll", Err: err}
	}

	rows, err := s.fetchResult(ctx, status.ResultURL)
	if err != nil {
		return nil, &ServiceError{Op: "fetch result", Err: err}
	}
	s.Log.Info().Int("encounters", len(rows)).Msg("edit-pair intersections fetched")
	return rows, nil
}

func (s *HTTPService) submit(ctx context.Context, p Params) (string, error) {
	body, err := json.Marshal(submitRequest{
		LookbackMonths:      p.LookbackMonths,
		MinPrimaryPaidCents: p.MinPrimaryPaidCents,
		MinLinkedPaidCents:  p.MinLinkedPaidCents,
		ProviderType:        p.ProviderType,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/queries", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var sr submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if sr.QueryID == "" {
		return "", fmt.Errorf("submit response missing query_id")
	}
	return sr.QueryID, nil
}

func (s *HTTPService) poll(ctx context.Context, queryID string) (*statusResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.PollTimeout)
	defer cancel()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		status, err := s.status(ctx, queryID)
		if err != nil {
			return nil, err
		}
		switch status.State {
		case stateSucceeded:
			if status.ResultURL == "" {
				return nil, fmt.Errorf("query %s succeeded but has no result_url", queryID)
			}
			return status, nil
		case stateFailed, stateCancelled:
			return nil, fmt.Errorf("query %s terminated with state %s: %s", queryID, status.State, status.Reason)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("query %s poll budget exhausted: %w", queryID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *HTTPService) status(ctx context.Context, queryID string) (*statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/queries/"+queryID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status check: unexpected status %s", resp.Status)
	}
	var st statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &st, nil
}

func (s *HTTPService) fetchResult(ctx context.Context, url string) ([]model.EditPairIntersection, error) {
	if !strings.Contains(url, "://") {
		url = s.BaseURL + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("result fetch: unexpected status %s", resp.Status)
	}
	return DecodeResultCSV(resp.Body)
}

// resultColumns are the required columns of the lookup result table.
var resultColumns = []string{
	"payer_control_number",
	"member_medicare_id",
	"rendering_provider_npi",
	"service_date",
	"ref_intersect",
	"target_intersect",
}

// DecodeResultCSV parses the lookup result table. The two intersect columns
// are bracketed, comma-separated code lists.
func DecodeResultCSV(r io.Reader) ([]model.EditPairIntersection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read result header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range resultColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("result missing column %q", name)
		}
	}

	var rows []model.EditPairIntersection
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read result row: %w", err)
		}
		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rows = append(rows, model.EditPairIntersection{
			Key: model.EncounterKey{
				PayerControlNumber:   field("payer_control_number"),
				MemberID:             field("member_medicare_id"),
				ServiceDate:          field("service_date"),
				RenderingProviderNPI: field("rendering_provider_npi"),
			},
			ReferenceCodes: normalize.ParseCodeList(field("ref_intersect")),
			TargetCodes:    normalize.ParseCodeList(field("target_intersect")),
		})
	}
	return rows, nil
}
