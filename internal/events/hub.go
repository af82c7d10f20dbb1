// Package events carries submission lifecycle notifications from the engine
// to connected dashboard clients. Publishing is best-effort: a slow consumer
// drops events instead of blocking a state transition.
package events

import (
	"sync"
	"time"
)

const (
	EventSubmitted = "submitted"
	EventApproved  = "approved"
	EventRejected  = "rejected"
)

type SubmissionEvent struct {
	Type         string    `json:"type"`
	SubmissionID uint      `json:"submission_id"`
	Reference    string    `json:"reference"`
	FormID       uint      `json:"form_id"`
	AgentID      uint      `json:"agent_id"`
	CycleNumber  int       `json:"cycle_number,omitempty"`
	ReviewerID   uint      `json:"reviewer_id,omitempty"`
	At           time.Time `json:"at"`
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan SubmissionEvent
	nextID uint64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan SubmissionEvent)}
}

func (h *Hub) Subscribe() (uint64, <-chan SubmissionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan SubmissionEvent, 16)
	h.subs[h.nextID] = ch
	return h.nextID, ch
}

func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Publish(ev SubmissionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
