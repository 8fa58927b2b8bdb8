package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/client"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
}

func TestCompareLocal(t *testing.T) {
	noon := 12.0
	var out bytes.Buffer
	err := compare(context.Background(), &out, registry.Default(), runOptions{
		ids:   []string{"Asia/Ho_Chi_Minh", "Nowhere/Land", "Asia/Tokyo"},
		hour:  &noon,
		width: 24,
		now:   fixedNow,
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{"12:00 PM in Ho Chi Minh City", "Tokyo", "2:00 PM", "Afternoon"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Nowhere") {
		t.Errorf("unknown timezone rendered:\n%s", got)
	}
}

func TestCompareLocalUsesClock(t *testing.T) {
	var out bytes.Buffer
	err := compare(context.Background(), &out, registry.Default(), runOptions{
		ids:  []string{"Europe/London", "Asia/Kolkata"},
		json: true,
		now:  fixedNow,
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatalf("output is not a snapshot: %v\n%s", err, out.String())
	}
	// 16:00 UTC is 21:30 in Mumbai.
	if snap.ReferenceHour != 16 || snap.Rows[1].Clock != "9:30 PM" {
		t.Errorf("snapshot = %+v, want London 16:00 and Mumbai 9:30 PM", snap)
	}
}

func TestCompareNothingKnown(t *testing.T) {
	var out bytes.Buffer
	err := compare(context.Background(), &out, registry.Default(), runOptions{
		ids:   []string{"Nowhere/Land"},
		width: 24,
		now:   fixedNow,
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No timezones selected") {
		t.Errorf("output = %q, want the empty-state message", out.String())
	}
}

func TestCompareRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req client.CompareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		opts := []session.Option{session.WithTimezones(req.IDs...), session.WithClock(fixedNow)}
		if req.Hour != nil {
			opts = append(opts, session.WithHour(*req.Hour))
		}
		_ = json.NewEncoder(w).Encode(session.New(registry.Default(), opts...).Snapshot()) //nolint:errcheck // test server
	}))
	defer srv.Close()

	eleven := 23.0
	var out bytes.Buffer
	err := compare(context.Background(), &out, registry.Default(), runOptions{
		ids:    []string{"Asia/Ho_Chi_Minh", "America/Los_Angeles"},
		hour:   &eleven,
		server: srv.URL,
		width:  24,
		now:    fixedNow,
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"11:00 PM in Ho Chi Minh City", "8:00 AM", "Morning"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCompareRemoteRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(client.ErrorResponse{Error: "Unknown timezone", Details: "Asia/Tokyo", Code: client.CodeTimezoneNotFound}) //nolint:errcheck // test server
	}))
	defer srv.Close()

	err := compare(context.Background(), io.Discard, registry.Default(), runOptions{
		ids:    []string{"Asia/Tokyo"},
		server: srv.URL,
		now:    fixedNow,
	}, quiet)
	if err == nil || !strings.Contains(err.Error(), "server refused Asia/Tokyo") {
		t.Errorf("error = %v, want a server rejection", err)
	}
}

func TestPrintTimezones(t *testing.T) {
	reg := registry.Default()
	var out bytes.Buffer
	printTimezones(&out, reg.Search("kathmandu", 1))
	if got := out.String(); !strings.Contains(got, "Asia/Kathmandu") || !strings.Contains(got, "UTC+5:45") {
		t.Errorf("printTimezones = %q", got)
	}
}
