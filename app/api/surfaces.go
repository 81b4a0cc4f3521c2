package api

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lysyi3m/reader-render/app/render"
)

const socketWriteTimeout = 10 * time.Second

var (
	_ render.Surface     = (*SocketSurface)(nil)
	_ render.MessageHost = (*SocketSurface)(nil)
)

// SocketSurface delivers documents to a websocket client. It is valid only
// while a client is attached.
type SocketSurface struct {
	mu       sync.Mutex
	writeMu  sync.Mutex
	conn     *websocket.Conn
	closed   bool
	handlers map[string]func(message string)
}

func NewSocketSurface() *SocketSurface {
	return &SocketSurface{handlers: make(map[string]func(message string))}
}

func (s *SocketSurface) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil && !s.closed
}

func (s *SocketSurface) Load(result render.RenderResult) error {
	return s.send(socketMessage{
		Type:       socketDocument,
		HTML:       result.HTML,
		ScriptURLs: result.ScriptURLs,
	})
}

func (s *SocketSurface) HasMessageHandler(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handlers[name]
	return ok
}

func (s *SocketSurface) AddMessageHandler(name string, handler func(message string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = handler
}

// Attach makes conn the active client, closing any previous one.
func (s *SocketSurface) Attach(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("surface is closed")
	}
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	return nil
}

// Serve reads client messages from conn until it fails, then detaches it.
func (s *SocketSurface) Serve(conn *websocket.Conn) {
	defer s.detach(conn)

	for {
		var msg socketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Surface socket closed unexpectedly", "error", err)
			}
			return
		}

		if msg.Type != socketClientMessage {
			slog.Debug("Ignoring surface socket message", "type", msg.Type)
			continue
		}

		s.mu.Lock()
		handler := s.handlers[msg.Handler]
		s.mu.Unlock()

		if handler == nil {
			slog.Debug("No handler for surface message", "handler", msg.Handler)
			continue
		}
		handler(msg.Body)
	}
}

// Notify sends a bridge event back to the client.
func (s *SocketSurface) Notify(name string) error {
	return s.send(socketMessage{Type: socketEvent, Name: name})
}

func (s *SocketSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *SocketSurface) detach(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == conn {
		s.conn = nil
	}
	conn.Close()
}

func (s *SocketSurface) send(msg socketMessage) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("no client attached")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to surface socket: %w", err)
	}
	return nil
}

// surfaceEvents forwards bridge callbacks to the attached client.
type surfaceEvents struct {
	id      string
	surface *SocketSurface
}

func (e *surfaceEvents) OnArticleTextCopied() {
	e.notify(render.MessageTextCopied)
}

func (e *surfaceEvents) OnArticleTextHighlighted() {
	e.notify(render.MessageTextHighlighted)
}

func (e *surfaceEvents) notify(name string) {
	slog.Debug("Surface text event", "surface", e.id, "event", name)
	if err := e.surface.Notify(name); err != nil {
		slog.Warn("Failed to forward surface event", "surface", e.id, "event", name, "error", err)
	}
}

type Session struct {
	ID       string
	Surface  *SocketSurface
	Pipeline *render.Pipeline
	Bridge   *render.Bridge
}

// SurfaceRegistry owns the live surfaces and their pipelines.
type SurfaceRegistry struct {
	mu       sync.RWMutex
	builder  render.Builder
	sessions map[string]*Session
}

func NewSurfaceRegistry(builder render.Builder) *SurfaceRegistry {
	return &SurfaceRegistry{
		builder:  builder,
		sessions: make(map[string]*Session),
	}
}

func (r *SurfaceRegistry) Create() *Session {
	surface := NewSocketSurface()
	session := &Session{
		ID:       uuid.NewString(),
		Surface:  surface,
		Pipeline: render.NewPipeline(r.builder, surface),
		Bridge:   render.NewBridge(),
	}
	session.Bridge.Register(surface)
	session.Bridge.SetListener(&surfaceEvents{id: session.ID, surface: surface})

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	slog.Debug("Surface created", "surface", session.ID)
	return session
}

func (r *SurfaceRegistry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

func (r *SurfaceRegistry) Delete(id string) bool {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	session.close()
	slog.Debug("Surface destroyed", "surface", id)
	return true
}

func (r *SurfaceRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SurfaceRegistry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
}

func (s *Session) close() {
	s.Bridge.SetListener(nil)
	s.Pipeline.Close()
	s.Surface.Close()
}
