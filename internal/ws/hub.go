package ws

import (
	"encoding/json"
	"sync"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/logger"
)

// Hub tracks open sockets per user so reward events reach every tab the
// user has open. Events are best-effort: no user connected, no delivery.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.conns[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.UserID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, c.UserID)
	}
}

// Connected reports how many sockets a user has open.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Publish sends a reward event to all of the user's sockets. A client
// with a full send buffer is skipped rather than blocking the credit
// path.
func (h *Hub) Publish(userID string, event domain.RewardEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal reward event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("dropping reward event, slow client", "user_id", userID)
		}
	}
}
