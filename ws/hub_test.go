package ws

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"notes-hub-api/dto"
)

type fakeConn struct {
	mu     sync.Mutex
	events []dto.OutEnvelope
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write failed")
	}
	f.events = append(f.events, v.(dto.OutEnvelope))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []dto.OutEnvelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.OutEnvelope(nil), f.events...)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHubJoinAndLeave(t *testing.T) {
	hub := NewHub(testLogger())
	session := NewSession("user1", &fakeConn{})

	hub.Register(session)
	hub.Join("chat1", session)
	if hub.RoomSize("chat1") != 1 {
		t.Fatalf("expected chat room to be created")
	}

	hub.Leave("chat1", session)
	if hub.RoomSize("chat1") != 0 {
		t.Fatalf("expected chat room to be removed")
	}
}

func TestHubBroadcastToRoomExcludesSender(t *testing.T) {
	hub := NewHub(testLogger())

	connA := &fakeConn{}
	connB := &fakeConn{}
	sessionA := NewSession("userA", connA)
	sessionB := NewSession("userB", connB)

	hub.Register(sessionA)
	hub.Register(sessionB)
	hub.Join("chat1", sessionA)
	hub.Join("chat1", sessionB)

	hub.BroadcastToRoom("chat1", "typing:start", dto.TypingEvent{UserID: "userA", ChatID: "chat1"}, sessionA)

	if len(connA.received()) != 0 {
		t.Fatalf("expected sender to be excluded from the broadcast")
	}
	got := connB.received()
	if len(got) != 1 {
		t.Fatalf("expected one event for the other member, got %d", len(got))
	}
	if got[0].Event != "typing:start" {
		t.Fatalf("unexpected event name %s", got[0].Event)
	}
}

func TestHubBroadcastDoesNotLeakAcrossRooms(t *testing.T) {
	hub := NewHub(testLogger())

	connA := &fakeConn{}
	connB := &fakeConn{}
	sessionA := NewSession("userA", connA)
	sessionB := NewSession("userB", connB)

	hub.Register(sessionA)
	hub.Register(sessionB)
	hub.Join("chat1", sessionA)
	hub.Join("chat2", sessionB)

	hub.BroadcastToRoom("chat1", "message:new", nil, nil)

	if len(connA.received()) != 1 {
		t.Fatalf("expected chat1 member to receive the event")
	}
	if len(connB.received()) != 0 {
		t.Fatalf("expected chat2 member to receive nothing")
	}
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub(testLogger())

	connA := &fakeConn{}
	connB := &fakeConn{}
	sessionA := NewSession("userA", connA)
	sessionB := NewSession("userB", connB)

	hub.Register(sessionA)
	hub.Register(sessionB)

	hub.BroadcastAll("user:online", dto.PresenceEvent{UserID: "userA"}, sessionA)

	if len(connA.received()) != 0 {
		t.Fatalf("expected origin session to be excluded")
	}
	if len(connB.received()) != 1 {
		t.Fatalf("expected other session to receive the presence event")
	}
}

func TestHubDropsSessionOnWriteError(t *testing.T) {
	hub := NewHub(testLogger())

	conn := &fakeConn{fail: true}
	session := NewSession("user1", conn)

	hub.Register(session)
	hub.Join("chat1", session)

	hub.BroadcastToRoom("chat1", "message:new", nil, nil)

	if !conn.closed {
		t.Fatalf("expected failing connection to be closed")
	}
	if hub.RoomSize("chat1") != 0 {
		t.Fatalf("expected failing session to be dropped from the room")
	}
}

func TestHubUnregisterLeavesAllRooms(t *testing.T) {
	hub := NewHub(testLogger())
	session := NewSession("user1", &fakeConn{})

	hub.Register(session)
	hub.Join("chat1", session)
	hub.Join("chat2", session)

	hub.Unregister(session)

	if hub.RoomSize("chat1") != 0 || hub.RoomSize("chat2") != 0 {
		t.Fatalf("expected session to be removed from every room")
	}
	if hub.SessionOfUser("user1") != nil {
		t.Fatalf("expected session to be gone from the hub")
	}
}

func TestHubSessionOfUser(t *testing.T) {
	hub := NewHub(testLogger())
	session := NewSession("user1", &fakeConn{})

	hub.Register(session)

	if hub.SessionOfUser("user1") != session {
		t.Fatalf("expected to find the user's session")
	}
	if hub.SessionOfUser("user2") != nil {
		t.Fatalf("expected nil for an offline user")
	}
}
