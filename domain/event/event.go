// Package event defines what the chat core publishes to the event log
// once a write has been committed.
package event

import (
	"time"

	"chat-core/domain/chat"

	"github.com/google/uuid"
)

type Kind int

const (
	KindRoomCreated Kind = iota + 1
	KindMessageAppended
)

func (k Kind) String() string {
	switch k {
	case KindRoomCreated:
		return "RoomCreated"
	case KindMessageAppended:
		return "MessageAppended"
	default:
		return "Unknown"
	}
}

type DomainEvent interface {
	RoomKey() chat.RoomKey
	Kind() Kind
	OccurredAt() time.Time
}

type RoomCreated struct {
	Room    chat.RoomKey
	Members []string
	At      time.Time
}

func (e RoomCreated) RoomKey() chat.RoomKey { return e.Room }
func (e RoomCreated) Kind() Kind            { return KindRoomCreated }
func (e RoomCreated) OccurredAt() time.Time { return e.At }

type MessageAppended struct {
	MessageID uuid.UUID
	Room      chat.RoomKey
	Sender    string
	Content   string
	At        time.Time
}

func (e MessageAppended) RoomKey() chat.RoomKey { return e.Room }
func (e MessageAppended) Kind() Kind            { return KindMessageAppended }
func (e MessageAppended) OccurredAt() time.Time { return e.At }

// Record is an event as read back from the log.
type Record struct {
	ID    uuid.UUID
	Event DomainEvent
}
