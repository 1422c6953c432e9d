package control

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/frudas24/astralgesture/internal/session"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Input is the gesture engine fed by the control channel.
type Input interface {
	Handle(ev gesture.PointerEvent) error
	Cancel()
	SetGeometry(g gesture.Geometry) error
}

// Server handles websocket control input.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	input    Input
	out      *Outbox
	log      logrus.FieldLogger
	filter   moveFilter
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, input Input, out *Outbox, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if out == nil {
		out = NewOutbox(log)
	}
	return &Server{
		session: sess,
		input:   input,
		out:     out,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.log.WithError(err).Info("control: rejecting connection")
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(msg); err != nil {
			s.log.WithError(err).Warn("control: closing connection")
			return
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	s.out.attach(conn)
	s.session.SetConnected(true)
	return nil
}

// cleanupConn clears the active connection when closed and drops the open contact.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.filter.reset()
		s.input.Cancel()
		s.session.SetConnected(false)
	}
	s.mu.Unlock()
	s.out.detach(conn)
	_ = conn.Close()
}

// handleMessage dispatches a single control message.
func (s *Server) handleMessage(msg Message) error {
	switch msg.T {
	case MsgDown, MsgMove, MsgUp:
		s.handlePointer(msg)
	case MsgCancel:
		s.cancel()
	case MsgGeometry:
		s.handleGeometry(msg)
	case MsgInputEnabled:
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
			if !*msg.Enabled {
				s.cancel()
			}
		}
	}
	return nil
}

// handlePointer maps a pointer message to surface pixels and feeds the engine.
func (s *Server) handlePointer(msg Message) {
	if !s.session.InputEnabled() {
		return
	}
	x, y := NormToSurface(msg.X, msg.Y, s.session.Geometry())

	s.mu.Lock()
	switch msg.T {
	case MsgDown:
		s.filter.start(msg.ID, x, y)
	case MsgMove:
		if !s.filter.allow(msg.ID, x, y) {
			s.mu.Unlock()
			return
		}
	case MsgUp:
		s.filter.reset()
	}
	s.mu.Unlock()

	ev := gesture.PointerEvent{ID: msg.ID, Kind: gesture.EventKind(msg.T), X: x, Y: y}
	if err := s.input.Handle(ev); err != nil {
		s.reject(msg, err)
	}
}

// handleGeometry updates the surface size used for mapping and zoning.
func (s *Server) handleGeometry(msg Message) {
	g := gesture.Geometry{Width: msg.W, Height: msg.H}
	if err := s.input.SetGeometry(g); err != nil {
		s.reject(msg, err)
		return
	}
	s.session.SetGeometry(g)
}

// cancel drops the open contact without emitting anything.
func (s *Server) cancel() {
	s.mu.Lock()
	s.filter.reset()
	s.mu.Unlock()
	s.input.Cancel()
}

// reject logs a refused message and reports it to the client.
func (s *Server) reject(msg Message, err error) {
	s.log.WithError(err).WithField("t", msg.T).Debug("control: message rejected")
	s.out.Send(Frame{T: FrameError, Error: err.Error()})
}
