package ws

import "testing"

func TestPresenceRegisterAndLookup(t *testing.T) {
	p := NewPresence()

	p.Register("user1", "session1")

	sessionID, ok := p.Lookup("user1")
	if !ok {
		t.Fatalf("expected user1 to be online")
	}
	if sessionID != "session1" {
		t.Fatalf("expected session1, got %s", sessionID)
	}
}

func TestPresenceUnregister(t *testing.T) {
	p := NewPresence()

	p.Register("user1", "session1")

	userID, ok := p.Unregister("session1")
	if !ok {
		t.Fatalf("expected unregister to find the session")
	}
	if userID != "user1" {
		t.Fatalf("expected owner user1, got %s", userID)
	}

	if _, ok := p.Lookup("user1"); ok {
		t.Fatalf("expected user1 to be offline after unregister")
	}
}

func TestPresenceLastWriterWins(t *testing.T) {
	p := NewPresence()

	p.Register("user1", "session1")
	p.Register("user1", "session2")

	sessionID, ok := p.Lookup("user1")
	if !ok || sessionID != "session2" {
		t.Fatalf("expected the later session to own the mapping, got %s", sessionID)
	}

	// the orphaned session's disconnect must not knock out the newer mapping
	if _, ok := p.Unregister("session1"); ok {
		t.Fatalf("expected orphaned session to be gone from the registry")
	}
	if _, ok := p.Lookup("user1"); !ok {
		t.Fatalf("expected user1 to stay online")
	}

	if userID, ok := p.Unregister("session2"); !ok || userID != "user1" {
		t.Fatalf("expected session2 to unregister user1")
	}
}

func TestPresenceOnline(t *testing.T) {
	p := NewPresence()

	p.Register("user1", "session1")
	p.Register("user2", "session2")

	online := p.Online()
	if len(online) != 2 {
		t.Fatalf("expected 2 online users, got %d", len(online))
	}
}

func TestPresenceUnregisterUnknownSession(t *testing.T) {
	p := NewPresence()

	if _, ok := p.Unregister("missing"); ok {
		t.Fatalf("expected unknown session to report not found")
	}
}
