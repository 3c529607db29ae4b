package runtime

import (
	"sync"

	"chat-core/contract"
)

// Registry maps a nickname to its live channels.
// A user may have several sessions open (tabs, devices), each with its own sink.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]contract.EventSink // nickname -> session id -> sink
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[string]contract.EventSink),
	}
}

// Subscribe registers one live session of a user.
func (r *Registry) Subscribe(nickname, sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[nickname]; !ok {
		r.sessions[nickname] = make(map[string]contract.EventSink)
	}
	r.sessions[nickname][sessionID] = sink
}

// Unsubscribe removes a session. The nickname entry is dropped with its last session
// so the map does not grow with every user ever connected.
func (r *Registry) Unsubscribe(nickname, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, ok := r.sessions[nickname]
	if !ok {
		return
	}
	delete(sessions, sessionID)
	if len(sessions) == 0 {
		delete(r.sessions, nickname)
	}
}

// GetSinksForUser returns nil when the user has no live session.
func (r *Registry) GetSinksForUser(nickname string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions, ok := r.sessions[nickname]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(sessions))
	for _, sink := range sessions {
		sinks = append(sinks, sink)
	}
	return sinks
}
