package ws

import (
	"encoding/json"
	"testing"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/gamify"
)

func TestHubPublishReachesAllUserSockets(t *testing.T) {
	hub := NewHub()

	a := &Client{UserID: "u1", Send: make(chan []byte, 1), hub: hub}
	b := &Client{UserID: "u1", Send: make(chan []byte, 1), hub: hub}
	other := &Client{UserID: "u2", Send: make(chan []byte, 1), hub: hub}
	hub.register(a)
	hub.register(b)
	hub.register(other)

	info := gamify.InfoForLevel(2)
	hub.Publish("u1", domain.RewardEvent{Type: domain.EventLevelUp, TotalPoints: 100, Level: &info})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var event domain.RewardEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				t.Fatalf("bad event payload: %v", err)
			}
			if event.Type != domain.EventLevelUp || event.TotalPoints != 100 {
				t.Errorf("unexpected event: %+v", event)
			}
		default:
			t.Fatal("client did not receive the event")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("event leaked to another user's socket")
	default:
	}
}

func TestHubPublishSkipsSlowClient(t *testing.T) {
	hub := NewHub()
	full := &Client{UserID: "u1", Send: make(chan []byte), hub: hub} // no buffer
	hub.register(full)

	// must not block
	hub.Publish("u1", domain.RewardEvent{Type: domain.EventLevelUp})
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	c := &Client{UserID: "u1", Send: make(chan []byte, 1), hub: hub}

	hub.register(c)
	if got := hub.Connected("u1"); got != 1 {
		t.Fatalf("Connected = %d, want 1", got)
	}

	hub.unregister(c)
	if got := hub.Connected("u1"); got != 0 {
		t.Fatalf("Connected after unregister = %d, want 0", got)
	}

	// publishing to a user with no sockets is a no-op
	hub.Publish("u1", domain.RewardEvent{Type: domain.EventAchievementUnlocked})
}
