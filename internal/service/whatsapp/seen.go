package whatsapp

import "sync"

// recentMessages remembers the last few message IDs so a redelivered
// webhook is only handled once.
type recentMessages struct {
	mu    sync.Mutex
	limit int
	order []string
	ids   map[string]struct{}
}

func newRecentMessages(limit int) *recentMessages {
	return &recentMessages{limit: limit, ids: make(map[string]struct{}, limit)}
}

// markSeen records id and reports whether it had already been seen.
func (r *recentMessages) markSeen(id string) bool {
	if id == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return true
	}

	if len(r.order) >= r.limit {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.ids, oldest)
	}
	r.order = append(r.order, id)
	r.ids[id] = struct{}{}

	return false
}
