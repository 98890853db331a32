package ws

import (
	"encoding/json"
	"sync"

	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/shopspring/decimal"
)

// cueEvent is the wire shape of a game cue push.
type cueEvent struct {
	Type string     `json:"type"`
	Cue  domain.Cue `json:"cue"`
}

// finishedEvent is the wire shape of the end-of-session settlement push.
type finishedEvent struct {
	Type   string               `json:"type"`
	Result domain.SessionResult `json:"result"`
	Earned string               `json:"earned"`
}

// Hub fans game cues out to an account's open websocket connections. It
// implements ports.CueNotifier: sends never block and are dropped when a
// client's buffer is full or no connection is open.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	muted   map[string]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		muted:   make(map[string]bool),
	}
}

// Register attaches a connection to an account. The account's sound
// preference at connect time decides whether tick cues are delivered.
func (h *Hub) Register(accountKey string, client *Client, soundEnabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountKey] == nil {
		h.clients[accountKey] = make(map[*Client]struct{})
	}
	h.clients[accountKey][client] = struct{}{}
	h.muted[accountKey] = !soundEnabled
}

// Unregister detaches a connection.
func (h *Hub) Unregister(accountKey string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountKey] == nil {
		return
	}
	delete(h.clients[accountKey], client)
	if len(h.clients[accountKey]) == 0 {
		delete(h.clients, accountKey)
		delete(h.muted, accountKey)
	}
}

// SetSound updates the mute state for an account's live connections.
// Called when the player toggles the sound preference mid-session.
func (h *Hub) SetSound(accountKey string, enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountKey] != nil {
		h.muted[accountKey] = !enabled
	}
}

// Cue pushes a game cue to the account. Tick cues are suppressed while the
// account's sound is off; game-state cues always go through.
func (h *Hub) Cue(accountKey string, cue domain.Cue) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cue == domain.CueTick && h.muted[accountKey] {
		return
	}
	h.broadcast(accountKey, cueEvent{Type: "cue", Cue: cue})
}

// SessionFinished pushes the settlement summary after a session settles.
func (h *Hub) SessionFinished(accountKey string, result domain.SessionResult, earned decimal.Decimal) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.broadcast(accountKey, finishedEvent{
		Type:   "session_finished",
		Result: result,
		Earned: earned.String(),
	})
}

// broadcast requires at least a read lock held by the caller.
func (h *Hub) broadcast(accountKey string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	for client := range h.clients[accountKey] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
