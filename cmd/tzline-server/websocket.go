package main

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/client"
	"github.com/codeGROOVE-dev/tzline/pkg/config"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/codeGROOVE-dev/tzline/pkg/timeline"
	"github.com/gorilla/websocket"
)

const (
	wsReadLimit   = 4 << 10
	wsIdleTimeout = 10 * time.Minute
	wsWriteWait   = 5 * time.Second
)

// The default CheckOrigin rejects cross-origin upgrades.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// sessionSet tracks open websocket connections so shutdown can close them.
type sessionSet struct {
	conns map[*websocket.Conn]struct{}
	mu    sync.Mutex
}

func newSessionSet() *sessionSet {
	return &sessionSet{conns: make(map[*websocket.Conn]struct{})}
}

func (ss *sessionSet) add(c *websocket.Conn) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.conns[c] = struct{}{}
}

func (ss *sessionSet) remove(c *websocket.Conn) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.conns, c)
}

func (ss *sessionSet) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.conns)
}

func (s *server) closeSessions() {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()
	deadline := time.Now().Add(wsWriteWait)
	for c := range s.sessions.conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		if err := c.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			s.logger.Debug("Failed to send close frame", "error", err)
		}
		if err := c.Close(); err != nil {
			s.logger.Debug("Failed to close websocket", "error", err)
		}
	}
}

// wsPeer is one browser tab. It owns a session and acts as its drag tracker:
// the page keeps window-level pointer listeners only between capture true and false.
// All writes happen on the connection's read goroutine.
type wsPeer struct {
	conn      *websocket.Conn
	logger    *slog.Logger
	session   *session.Session
	requestID string
}

func (p *wsPeer) Attach() {
	p.send(client.Message{Type: client.MsgCapture, Capture: true})
}

func (p *wsPeer) Detach() {
	p.send(client.Message{Type: client.MsgCapture, Capture: false})
}

func (p *wsPeer) publish(snap session.Snapshot) {
	p.send(client.Message{Type: client.MsgSnapshot, Snapshot: &snap})
}

func (p *wsPeer) sendError(body client.ErrorResponse) {
	p.send(client.Message{Type: client.MsgError, Error: &body})
}

func (p *wsPeer) send(msg client.Message) {
	if err := p.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		p.logger.Debug("Failed to set write deadline", "request_id", p.requestID, "error", err)
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		p.logger.Debug("WebSocket write failed", "request_id", p.requestID, "type", msg.Type, "error", err)
	}
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get("X-Request-ID")

	ids := s.cfg.Timezones
	if v := r.URL.Query().Get("tz"); v != "" {
		ids = config.SplitList(v)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "request_id", requestID, "error", err)
		return
	}
	s.sessions.add(conn)
	defer func() {
		s.sessions.remove(conn)
		if err := conn.Close(); err != nil {
			s.logger.Debug("Failed to close websocket", "request_id", requestID, "error", err)
		}
	}()

	peer := &wsPeer{conn: conn, logger: s.logger, requestID: requestID}
	peer.session = session.New(s.registry,
		session.WithTimezones(ids...),
		session.WithFallbackHour(s.cfg.FallbackHour),
		session.WithClock(s.now),
		session.WithTracker(peer),
		session.WithLogger(s.logger.With("request_id", requestID)),
		session.WithOnChange(peer.publish))
	defer peer.session.Close()

	s.logger.Info("WebSocket session started",
		"request_id", requestID,
		"client_ip", clientIP(r),
		"timezones", peer.session.IDs())

	conn.SetReadLimit(wsReadLimit)
	peer.publish(peer.session.Snapshot())

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsIdleTimeout)); err != nil {
			s.logger.Debug("Failed to set read deadline", "request_id", requestID, "error", err)
		}
		var msg client.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", "request_id", requestID, "error", err)
			} else {
				s.logger.Info("WebSocket session closed", "request_id", requestID)
			}
			return
		}
		s.dispatch(peer, msg)
	}
}

// dispatch applies one inbound frame to the peer's session. Rejected mutations
// leave the session unchanged and are reported back as error frames.
func (s *server) dispatch(p *wsPeer, msg client.Message) {
	var err error
	switch msg.Type {
	case client.MsgPointer:
		kind, kerr := timeline.ParseKind(msg.Kind)
		if kerr != nil {
			p.sendError(client.ErrorResponse{Error: "Invalid pointer event", Details: kerr.Error(), Code: client.CodeInvalidRequest})
			return
		}
		p.session.Handle(timeline.Event{Kind: kind, X: msg.X})
	case client.MsgBounds:
		p.session.SetTimelineBounds(timeline.Bounds{Left: msg.Left, Width: msg.Width})
	case client.MsgAdd:
		err = p.session.Add(strings.TrimSpace(msg.ID))
	case client.MsgRemove:
		err = p.session.Remove(msg.ID)
	case client.MsgReorder:
		err = p.session.Reorder(msg.From, msg.To)
	case client.MsgNudge:
		p.session.Nudge(msg.Delta)
	default:
		p.sendError(client.ErrorResponse{Error: "Unknown message type", Details: msg.Type, Code: client.CodeInvalidRequest})
		return
	}

	if err != nil {
		if session.IsRejection(err) {
			s.logger.Debug("Ignoring rejected change", "request_id", p.requestID, "type", msg.Type, "error", err)
		} else {
			s.logger.Error("Session change failed", "request_id", p.requestID, "type", msg.Type, "error", err)
		}
		p.sendError(errorFor(err))
	}
}
