// Package watch implements the snapshot push model: every write to a
// user's task collection re-reads the full collection and broadcasts it to
// that user's subscribers. Consumers always re-derive views from the
// latest full snapshot, never from a diff.
package watch

import (
	"sync"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// Hub fans full task-collection snapshots out to per-user subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan []model.Task
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan []model.Task)}
}

// Subscribe registers a snapshot feed for a user. The returned cancel
// function must be called to release the subscription; the channel is
// closed by it.
func (h *Hub) Subscribe(userID string) (<-chan []model.Task, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan []model.Task, 1)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan []model.Task)
	}
	id := h.next
	h.next++
	h.subs[userID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[userID][id]; ok {
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of the user. A slow
// subscriber keeps only the newest snapshot: a stale one still in its
// buffer is dropped, because a newer snapshot supersedes it.
func (h *Hub) Publish(userID string, snapshot []model.Task) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[userID] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
