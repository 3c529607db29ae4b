//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-core/domain/chat"
	"chat-core/domain/event"
)

// ChatTx is the view of the store inside one atomic transaction.
// Writes become visible to other readers only if the whole transaction commits.
type ChatTx interface {
	LoadByID(key chat.RoomKey) (chat.Room, bool, error)
	Save(room chat.Room) error
	SaveMessage(message chat.Message) error
}

// ChatStore persists rooms and messages.
// Transact runs fn in one atomic transaction; an error returned by fn rolls everything back.
type ChatStore interface {
	Transact(ctx context.Context, fn func(tx ChatTx) error) error
	LoadByID(ctx context.Context, key chat.RoomKey) (chat.Room, bool, error)
	ExistsByID(ctx context.Context, key chat.RoomKey) (bool, error)
	Save(ctx context.Context, room chat.Room) error
	FindMessagesByRoom(ctx context.Context, key chat.RoomKey) ([]chat.Message, error)
	FindMessagesPage(ctx context.Context, key chat.RoomKey, cursor *string) ([]chat.Message, *string, error)
	FindAllByMemberNickname(ctx context.Context, nickname string) ([]chat.Room, error)
	CheckMembership(ctx context.Context, key chat.RoomKey, nickname string) (bool, error)
}

// FanoutSink delivers a room snapshot to every member's live channel.
// It never fails the caller: per-member errors are handled by the implementation.
type FanoutSink interface {
	Broadcast(ctx context.Context, room chat.Room)
}

// EventSink is one live channel of a connected user.
type EventSink interface {
	Consume(ctx context.Context, summary chat.RoomSummary) error
}

// EventLog is the append-only publish sink for committed domain events.
type EventLog interface {
	Publish(ctx context.Context, evt event.DomainEvent) error
	Since(ctx context.Context, after time.Time, limit int) ([]event.Record, error)
}

// Notification is what a push provider delivers to an offline member.
type Notification struct {
	Nickname string
	Room     chat.RoomKey
	Title    string
	Body     string
}

// Notifier is the external messaging-provider gateway.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
	Close() error
}

// Moderator rewrites message content before it is persisted.
type Moderator interface {
	Censor(content string) string
}

type IRegistry interface {
	Subscribe(nickname, sessionID string, sink EventSink)
	Unsubscribe(nickname, sessionID string)
	GetSinksForUser(nickname string) []EventSink
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker
// for logging and supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
