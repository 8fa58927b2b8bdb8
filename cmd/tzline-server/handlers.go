package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/client"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/respcache"
	"github.com/codeGROOVE-dev/tzline/pkg/selection"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
)

const (
	defaultSearchLimit = 10
	maxCompareBody     = 16 << 10
)

var homeTmpl = template.Must(template.New("home").Parse(homeTemplate))

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get("X-Request-ID")

	if r.Method != http.MethodGet {
		s.logger.Error("Method not allowed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP(r))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	// ?tz=Asia/Tokyo,Europe/Paris overrides the configured starting selection.
	ids := s.cfg.Timezones
	if v := r.URL.Query().Get("tz"); v != "" {
		ids = nil
		for _, id := range strings.Split(v, ",") {
			if _, err := s.registry.Lookup(strings.TrimSpace(id)); err == nil {
				ids = append(ids, strings.TrimSpace(id))
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTmpl.Execute(w, struct{ Timezones string }{strings.Join(ids, ",")}); err != nil {
		s.logger.Error("Template execution failed",
			"request_id", requestID,
			"error", err)
	}
}

func (s *server) handleTimezones(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := w.Header().Get("X-Request-ID")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := defaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit",
				fmt.Sprintf("limit must be a non-negative integer, got %q", v), client.CodeInvalidRequest)
			return
		}
		limit = n
	}

	key := respcache.Key("timezones", query, strconv.Itoa(limit))
	if data, found := s.cache.Get(key); found {
		s.writeJSON(w, data, "memory-hit")
		return
	}

	matches := s.registry.Search(query, limit)
	data, err := json.Marshal(client.TimezonesResponse{Timezones: matches, Count: len(matches)})
	if err != nil {
		s.logger.Error("JSON encoding failed", "request_id", requestID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Encoding failed", "", client.CodeInternal)
		return
	}
	s.cache.Set(key, data)
	s.writeJSON(w, data, "miss")

	s.logger.Debug("Timezone search completed",
		"request_id", requestID,
		"query", query,
		"matches", len(matches),
		"duration_ms", time.Since(start).Milliseconds())
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := w.Header().Get("X-Request-ID")

	var req client.CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCompareBody)).Decode(&req); err != nil {
		s.logger.Warn("Invalid request body",
			"request_id", requestID,
			"error", err,
			"client_ip", clientIP(r))
		s.writeError(w, http.StatusBadRequest, "Invalid request", err.Error(), client.CodeInvalidRequest)
		return
	}
	if len(req.IDs) == 0 {
		s.writeError(w, http.StatusBadRequest, "No timezones given",
			"ids must name at least one timezone", client.CodeInvalidRequest)
		return
	}

	seen := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		if _, err := s.registry.Lookup(id); err != nil {
			s.writeError(w, http.StatusNotFound, "Unknown timezone", id, client.CodeTimezoneNotFound)
			return
		}
		if seen[id] {
			s.writeError(w, http.StatusBadRequest, "Timezone listed twice", id, client.CodeDuplicate)
			return
		}
		seen[id] = true
	}

	opts := []session.Option{
		session.WithTimezones(req.IDs...),
		session.WithClock(s.now),
		session.WithLogger(s.logger),
	}
	// Only fixed-hour comparisons are stable enough to cache.
	var key string
	if req.Hour != nil {
		opts = append(opts, session.WithHour(*req.Hour))
		key = respcache.Key("compare", strings.Join(req.IDs, ","), strconv.FormatFloat(*req.Hour, 'f', -1, 64))
		if data, found := s.cache.Get(key); found {
			s.writeJSON(w, data, "memory-hit")
			return
		}
	}

	snap := session.New(s.registry, opts...).Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("JSON encoding failed", "request_id", requestID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Encoding failed", "", client.CodeInternal)
		return
	}
	if key != "" {
		s.cache.Set(key, data)
	}
	s.writeJSON(w, data, "miss")

	s.logger.Info("Comparison completed",
		"request_id", requestID,
		"timezones", req.IDs,
		"reference_hour", snap.ReferenceHour,
		"duration_ms", time.Since(start).Milliseconds())
}

func (s *server) writeJSON(w http.ResponseWriter, data []byte, cache string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cache)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write response",
			"request_id", w.Header().Get("X-Request-ID"),
			"error", err,
			"response_size", len(data))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg, details, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(client.ErrorResponse{Error: msg, Details: details, Code: code}); err != nil {
		s.logger.Error("Failed to encode error response",
			"request_id", w.Header().Get("X-Request-ID"),
			"encode_error", err)
	}
}

// errorFor maps a session rejection to its API error body.
func errorFor(err error) client.ErrorResponse {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return client.ErrorResponse{Error: "Unknown timezone", Details: err.Error(), Code: client.CodeTimezoneNotFound}
	case errors.Is(err, selection.ErrDuplicate):
		return client.ErrorResponse{Error: "Timezone already selected", Details: err.Error(), Code: client.CodeDuplicate}
	case errors.Is(err, selection.ErrNotFound):
		return client.ErrorResponse{Error: "Timezone not selected", Details: err.Error(), Code: client.CodeNotSelected}
	case errors.Is(err, selection.ErrInvalidIndex):
		return client.ErrorResponse{Error: "Invalid position", Details: err.Error(), Code: client.CodeInvalidIndex}
	default:
		return client.ErrorResponse{Error: "Request failed", Details: err.Error(), Code: client.CodeInternal}
	}
}
