package client

import (
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
)

// CompareRequest is the body of POST /api/v1/compare.
// A nil Hour asks the server to use the current time in the reference timezone.
type CompareRequest struct {
	Hour *float64 `json:"hour,omitempty"`
	IDs  []string `json:"ids"`
}

// TimezonesResponse is the body of GET /api/v1/timezones.
type TimezonesResponse struct {
	Timezones []registry.Descriptor `json:"timezones"`
	Count     int                   `json:"count"`
}

// ErrorResponse is the JSON error body returned by the server.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

// Error codes used in ErrorResponse.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeTimezoneNotFound = "TIMEZONE_NOT_FOUND"
	CodeDuplicate        = "DUPLICATE_TIMEZONE"
	CodeNotSelected      = "TIMEZONE_NOT_SELECTED"
	CodeInvalidIndex     = "INVALID_INDEX"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Websocket message types.
const (
	MsgPointer  = "pointer"
	MsgBounds   = "bounds"
	MsgAdd      = "add"
	MsgRemove   = "remove"
	MsgReorder  = "reorder"
	MsgNudge    = "nudge"
	MsgSnapshot = "snapshot"
	MsgCapture  = "capture"
	MsgError    = "error"
)

// Message is one websocket frame in either direction.
//
// Inbound frames carry Type plus the fields that type needs: pointer (Kind, X),
// bounds (Left, Width), add and remove (ID), reorder (From, To), nudge (Delta).
// Outbound frames are a snapshot, an error, or a capture notice telling the page to
// start (Capture true) or stop listening for pointer input outside the timeline.
type Message struct {
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Error    *ErrorResponse    `json:"error,omitempty"`
	Type     string            `json:"type"`
	Kind     string            `json:"kind,omitempty"`
	ID       string            `json:"id,omitempty"`
	X        float64           `json:"x,omitempty"`
	Left     float64           `json:"left,omitempty"`
	Width    float64           `json:"width,omitempty"`
	Delta    float64           `json:"delta,omitempty"`
	From     int               `json:"from,omitempty"`
	To       int               `json:"to,omitempty"`
	Capture  bool              `json:"capture,omitempty"`
}
