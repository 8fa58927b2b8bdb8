package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/google/go-cmp/cmp"
)

func TestTimezones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/timezones" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "tok" {
			t.Errorf("q = %q, want tok", got)
		}
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Errorf("limit = %q, want 3", got)
		}
		tokyo, err := registry.Default().Lookup("Asia/Tokyo")
		if err != nil {
			t.Error(err)
			return
		}
		_ = json.NewEncoder(w).Encode(TimezonesResponse{Timezones: []registry.Descriptor{tokyo}, Count: 1}) //nolint:errcheck // test server
	}))
	defer srv.Close()

	got, err := New(srv.URL).Timezones(context.Background(), "tok", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 1 || got.Timezones[0].ID != "Asia/Tokyo" || got.Timezones[0].Offset != 9 {
		t.Errorf("Timezones() = %+v", got)
	}
}

func TestCompareSendsRequest(t *testing.T) {
	hour := 12.0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req CompareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Hour == nil {
			t.Errorf("decoding request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if diff := cmp.Diff(CompareRequest{IDs: []string{"Asia/Ho_Chi_Minh", "Asia/Tokyo"}, Hour: &hour}, req); diff != "" {
			t.Errorf("request mismatch (-want +got):\n%s", diff)
		}
		s := session.New(registry.Default(), session.WithTimezones(req.IDs...), session.WithHour(*req.Hour))
		_ = json.NewEncoder(w).Encode(s.Snapshot()) //nolint:errcheck // test server
	}))
	defer srv.Close()

	snap, err := New(srv.URL).Compare(context.Background(), []string{"Asia/Ho_Chi_Minh", "Asia/Tokyo"}, &hour)
	if err != nil {
		t.Fatal(err)
	}
	if snap.ReferenceID != "Asia/Ho_Chi_Minh" || len(snap.Rows) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Rows[1].Clock != "2:00 PM" {
		t.Errorf("Tokyo clock = %q, want 2:00 PM", snap.Rows[1].Clock)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(TimezonesResponse{Count: 0}) //nolint:errcheck // test server
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetry(5, time.Millisecond))
	if _, err := c.Timezones(context.Background(), "", 0); err != nil {
		t.Fatalf("Timezones() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestRejectionsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{ //nolint:errcheck // test server
			Error:   "unknown timezone",
			Details: "Atlantis/Capital",
			Code:    CodeTimezoneNotFound,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetry(5, time.Millisecond))
	_, err := c.Compare(context.Background(), []string{"Atlantis/Capital"}, nil)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("error = %v, want ErrRejected", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Body.Code != CodeTimezoneNotFound {
		t.Errorf("error = %v, want APIError with code %s", err, CodeTimezoneNotFound)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestAPIErrorRateLimitIsNotRejection(t *testing.T) {
	err := &APIError{Status: http.StatusTooManyRequests, Body: ErrorResponse{Error: "slow down", Code: CodeRateLimited}}
	if errors.Is(err, ErrRejected) {
		t.Error("429 should be retryable, not a rejection")
	}
	if got, want := err.Error(), "HTTP 429 RATE_LIMITED: slow down"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
