package ws

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub maintains the connected sessions and their chat rooms. Broadcasts are
// fire-and-forget: a failed write drops the session from the hub and closes
// it, nothing is queued or retried.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]bool
	rooms    map[string]map[*Session]bool // chatID -> sessions
	joined   map[*Session]map[string]bool // session -> chatIDs

	log *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]bool),
		rooms:    make(map[string]map[*Session]bool),
		joined:   make(map[*Session]map[string]bool),
		log:      log,
	}
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = true
}

// Unregister drops the session from the hub and every room it joined.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s *Session) {
	delete(h.sessions, s)
	for chatID := range h.joined[s] {
		if members, ok := h.rooms[chatID]; ok {
			delete(members, s)
			if len(members) == 0 {
				delete(h.rooms, chatID)
			}
		}
	}
	delete(h.joined, s)
}

func (h *Hub) Join(chatID string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[*Session]bool)
	}
	h.rooms[chatID][s] = true

	if _, ok := h.joined[s]; !ok {
		h.joined[s] = make(map[string]bool)
	}
	h.joined[s][chatID] = true
}

func (h *Hub) Leave(chatID string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[chatID]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, chatID)
		}
	}
	if chats, ok := h.joined[s]; ok {
		delete(chats, chatID)
	}
}

// SessionOfUser returns any connected session owned by the user, nil when
// offline.
func (h *Hub) SessionOfUser(userID string) *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

func (h *Hub) RoomSize(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}

// BroadcastToRoom emits an event to every session in the chat room. except
// may be nil to include the sender.
func (h *Hub) BroadcastToRoom(chatID, event string, data interface{}, except *Session) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.rooms[chatID]))
	for s := range h.rooms[chatID] {
		if s != except {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	h.emitAll(targets, event, data)
}

// BroadcastAll emits an event to every connected session.
func (h *Hub) BroadcastAll(event string, data interface{}, except *Session) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		if s != except {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	h.emitAll(targets, event, data)
}

func (h *Hub) emitAll(targets []*Session, event string, data interface{}) {
	for _, s := range targets {
		if err := s.Emit(event, data); err != nil {
			h.log.WithError(err).Warnf("Error broadcasting %s, dropping session %s", event, s.ID)
			s.Close()
			h.Unregister(s)
		}
	}
}
