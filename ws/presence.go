package ws

import "sync"

// Presence maps authenticated users to their active session in both
// directions for O(1) lookup. State is process-local and lost on restart;
// every user appears offline until they reconnect.
type Presence struct {
	mu        sync.RWMutex
	byUser    map[string]string // userID -> sessionID
	bySession map[string]string // sessionID -> userID
}

func NewPresence() *Presence {
	return &Presence{
		byUser:    make(map[string]string),
		bySession: make(map[string]string),
	}
}

// Register records the mapping, last writer wins. A previous session of the
// same user is orphaned from the registry but not closed.
func (p *Presence) Register(userID, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prev, ok := p.byUser[userID]; ok {
		delete(p.bySession, prev)
	}
	p.byUser[userID] = sessionID
	p.bySession[sessionID] = userID
}

// Unregister removes both entries and reports the owning user. A session
// orphaned by a later Register is no longer in the registry, so its
// disconnect cannot knock out the newer mapping.
func (p *Presence) Unregister(sessionID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	userID, ok := p.bySession[sessionID]
	if !ok {
		return "", false
	}
	delete(p.bySession, sessionID)
	if p.byUser[userID] == sessionID {
		delete(p.byUser, userID)
	}
	return userID, true
}

// Lookup returns the active session for a user, used to decide between
// real-time delivery and treating the user as offline.
func (p *Presence) Lookup(userID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sessionID, ok := p.byUser[userID]
	return sessionID, ok
}

func (p *Presence) Online() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := make([]string, 0, len(p.byUser))
	for userID := range p.byUser {
		users = append(users, userID)
	}
	return users
}
