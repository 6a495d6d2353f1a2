package ws

import (
	"sync"

	"github.com/google/uuid"

	"notes-hub-api/dto"
)

// Conn is the slice of a websocket connection the hub needs. Satisfied by
// *websocket.Conn from gofiber/contrib.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Session is one admitted websocket connection. Writes are serialized with
// a mutex because broadcasts and direct emits come from different goroutines.
type Session struct {
	ID     string
	UserID string

	mu   sync.Mutex
	conn Conn
}

func NewSession(userID string, conn Conn) *Session {
	return &Session{
		ID:     uuid.New().String(),
		UserID: userID,
		conn:   conn,
	}
}

func (s *Session) Emit(event string, data interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(dto.OutEnvelope{Event: event, Data: data})
}

func (s *Session) Close() error {
	return s.conn.Close()
}
