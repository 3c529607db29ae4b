// Package sink holds the live channels room snapshots are pushed into.
package sink

import (
	"context"
	"fmt"
	"sync"

	"chat-core/domain/chat"
	"chat-core/errors"
)

// SessionSink buffers the snapshots of one connected session until the
// transport writes them out. The buffer is never closed; Close releases
// pending and future Consume calls instead.
type SessionSink struct {
	Nickname  string
	SessionID string
	summaries chan chat.RoomSummary
	done      chan struct{}
	closeOnce sync.Once
}

func NewSessionSink(nickname, sessionID string, bufferSize int) *SessionSink {
	return &SessionSink{
		Nickname:  nickname,
		SessionID: sessionID,
		summaries: make(chan chat.RoomSummary, bufferSize),
		done:      make(chan struct{}),
	}
}

// Consume waits for room in the buffer until ctx ends or the session closes.
func (s *SessionSink) Consume(ctx context.Context, summary chat.RoomSummary) error {
	select {
	case <-s.done:
		return fmt.Errorf("%w: session %s closed", errors.ErrSinkFull, s.SessionID)
	default:
	}
	select {
	case s.summaries <- summary:
		return nil
	case <-s.done:
		return fmt.Errorf("%w: session %s closed", errors.ErrSinkFull, s.SessionID)
	case <-ctx.Done():
		return fmt.Errorf("%w: session %s: %v", errors.ErrSinkFull, s.SessionID, ctx.Err())
	}
}

func (s *SessionSink) Summaries() <-chan chat.RoomSummary {
	return s.summaries
}

func (s *SessionSink) Done() <-chan struct{} {
	return s.done
}

func (s *SessionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
