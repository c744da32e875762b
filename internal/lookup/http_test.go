package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimflag/internal/model"
)

const resultCSV = `payer_control_number,member_medicare_id,rendering_provider_npi,service_date,ref_intersect,target_intersect
PCN1,M1,NPI1,2024-02-20,"[99213, 99214]","[97110,97112]"
PCN2,M2,NPI2,2024-02-21,[99215],[]
`

// newQueryServer simulates the remote analytical query service: submit
// returns a query id, status reports RUNNING for pending polls then the
// terminal state, and the result endpoint serves CSV.
func newQueryServer(t *testing.T, pendingPolls int32, terminalState string) *httptest.Server {
	t.Helper()
	var polls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /queries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"query_id":"q-123"}`)
	})
	mux.HandleFunc("GET /queries/q-123", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) <= pendingPolls {
			fmt.Fprint(w, `{"state":"RUNNING"}`)
			return
		}
		switch terminalState {
		case stateSucceeded:
			fmt.Fprint(w, `{"state":"SUCCEEDED","result_url":"/results/q-123.csv"}`)
		default:
			fmt.Fprintf(w, `{"state":%q,"reason":"boom"}`, terminalState)
		}
	})
	mux.HandleFunc("GET /results/q-123.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultCSV)
	})
	return httptest.NewServer(mux)
}

func testService(url string) *HTTPService {
	svc := NewHTTPService(url, zerolog.Nop())
	svc.PollInterval = 5 * time.Millisecond
	svc.PollTimeout = time.Second
	return svc
}

func TestHTTPService_SubmitPollFetch(t *testing.T) {
	srv := newQueryServer(t, 2, stateSucceeded)
	defer srv.Close()

	rows, err := testService(srv.URL).Intersections(context.Background(), DefaultParams())
	if err != nil {
		t.Fatalf("Intersections: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	want := model.EditPairIntersection{
		Key: model.EncounterKey{
			PayerControlNumber:   "PCN1",
			MemberID:             "M1",
			ServiceDate:          "2024-02-20",
			RenderingProviderNPI: "NPI1",
		},
		ReferenceCodes: []string{"99213", "99214"},
		TargetCodes:    []string{"97110", "97112"},
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0: got %+v, want %+v", rows[0], want)
	}
	if rows[1].TargetCodes != nil {
		t.Errorf("empty bracket list should decode to nil, got %v", rows[1].TargetCodes)
	}
}

func TestHTTPService_QueryFailureIsServiceError(t *testing.T) {
	srv := newQueryServer(t, 0, stateFailed)
	defer srv.Close()

	_, err := testService(srv.URL).Intersections(context.Background(), DefaultParams())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Op != "poll" {
		t.Errorf("Op: got %q, want poll", se.Op)
	}
}

func TestHTTPService_PollBudgetExhausted(t *testing.T) {
	// Server never leaves RUNNING; the bounded poll must terminate.
	srv := newQueryServer(t, 1<<30, stateSucceeded)
	defer srv.Close()

	svc := testService(srv.URL)
	svc.PollTimeout = 30 * time.Millisecond

	_, err := svc.Intersections(context.Background(), DefaultParams())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
}

func TestDecodeResultCSV_MissingColumn(t *testing.T) {
	bad := "payer_control_number,member_medicare_id\nPCN1,M1\n"
	if _, err := DecodeResultCSV(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestDecodeResultCSV_ColumnOrderInsensitive(t *testing.T) {
	csv := `target_intersect,ref_intersect,service_date,rendering_provider_npi,member_medicare_id,payer_control_number
[99214],[99213],2024-02-20,NPI1,M1,PCN1
`
	rows, err := DecodeResultCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeResultCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Key.PayerControlNumber != "PCN1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !reflect.DeepEqual(rows[0].ReferenceCodes, []string{"99213"}) {
		t.Errorf("ref codes: got %v", rows[0].ReferenceCodes)
	}
}
