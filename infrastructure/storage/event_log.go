package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-core/domain/event"
	"chat-core/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const eventPrefix = "evt:"

// EventLog is an append-only journal of committed domain events.
// Keys are "evt:{unixnano padded to 19 digits}:{uuid}" so a forward scan replays them in order.
type EventLog struct {
	db  *badger.DB
	log *slog.Logger
}

func NewEventLog(db *badger.DB, log *slog.Logger) *EventLog {
	return &EventLog{db: db, log: log}
}

func (l *EventLog) Publish(_ context.Context, evt event.DomainEvent) error {
	id := uuid.New()
	value, err := encodeEvent(id, evt)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%019d:%s", eventPrefix, evt.OccurredAt().UnixNano(), id)
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	l.log.Debug("Event published", "kind", evt.Kind().String(), "room", evt.RoomKey())
	return nil
}

// Since returns up to limit events that occurred strictly after the given time, oldest first.
// A limit <= 0 returns everything.
func (l *EventLog) Since(_ context.Context, after time.Time, limit int) ([]event.Record, error) {
	var records []event.Record
	prefix := []byte(eventPrefix)
	start := prefix
	if !after.IsZero() {
		start = []byte(fmt.Sprintf("%s%019d", eventPrefix, after.UnixNano()+1))
	}
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				break
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
			}
			record, err := decodeEvent(value)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
