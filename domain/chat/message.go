package chat

import (
	"time"

	"github.com/google/uuid"
)

// Status is the delivery status of a message. Only StatusSent is produced today.
type Status int

const (
	StatusSent Status = iota
	StatusDelivered
	StatusRead
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "SENT"
	case StatusDelivered:
		return "DELIVERED"
	case StatusRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// Message belongs to exactly one room and is immutable once appended.
type Message struct {
	ID      uuid.UUID
	Room    RoomKey
	Sender  Member
	Content string
	At      time.Time
	Status  Status
}

func NewMessage(room RoomKey, sender Member, content string, at time.Time) Message {
	return Message{
		ID:      uuid.New(),
		Room:    room,
		Sender:  sender,
		Content: content,
		At:      at,
		Status:  StatusSent,
	}
}

// RoomView is a room together with its history, oldest message first.
type RoomView struct {
	Room     Room
	Messages []Message
}
