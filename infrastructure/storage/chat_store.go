package storage

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"chat-core/contract"
	"chat-core/domain/chat"
	"chat-core/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	roomPrefix    = "room:"
	memberPrefix  = "member:"
	messagePrefix = "msg:"
)

func roomKey(key chat.RoomKey) []byte {
	return []byte(roomPrefix + key.String())
}

func memberKey(nickname string, key chat.RoomKey) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", memberPrefix, nickname, key))
}

// messageKey is formatted as "msg:{room}:{unixnano padded to 19 digits}:{uuid}" so a
// prefix scan returns a room's messages in chronological order. The uuid keeps two
// messages written in the same nanosecond apart.
func messageKey(m chat.Message) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s", messagePrefix, m.Room, m.At.UnixNano(), m.ID))
}

func messageRoomPrefix(key chat.RoomKey) []byte {
	return []byte(messagePrefix + key.String() + ":")
}

// ChatStore persists rooms and messages in BadgerDB.
// A room, its member index entries and a message can be written in one transaction.
type ChatStore struct {
	db              *badger.DB
	log             *slog.Logger
	limitMessages   *int
	conflictRetries int
}

func NewChatStore(db *badger.DB, log *slog.Logger, limitMessages *int, conflictRetries int) *ChatStore {
	return &ChatStore{db: db, log: log, limitMessages: limitMessages, conflictRetries: conflictRetries}
}

// Transact runs fn inside a read-write transaction.
// Badger detects read-write conflicts at commit time; the whole function is
// replayed on a fresh transaction up to conflictRetries times.
// An error returned by fn is handed back untouched, any other failure is ErrStoreUnavailable.
func (s *ChatStore) Transact(ctx context.Context, fn func(tx contract.ChatTx) error) error {
	var err error
	for attempt := 0; attempt <= s.conflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var fnErr error
		err = s.db.Update(func(txn *badger.Txn) error {
			fnErr = fn(&chatTx{txn: txn})
			return fnErr
		})
		if fnErr != nil {
			return fnErr
		}
		if !goerrors.Is(err, badger.ErrConflict) {
			break
		}
		s.log.Debug("Transaction conflict, replaying", "attempt", attempt+1)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *ChatStore) LoadByID(_ context.Context, key chat.RoomKey) (chat.Room, bool, error) {
	var (
		room  chat.Room
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		room, found, err = loadRoom(txn, key)
		return err
	})
	return room, found, err
}

func (s *ChatStore) ExistsByID(_ context.Context, key chat.RoomKey) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(roomKey(key))
		switch {
		case err == nil:
			exists = true
			return nil
		case goerrors.Is(err, badger.ErrKeyNotFound):
			return nil
		default:
			return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
		}
	})
	return exists, err
}

func (s *ChatStore) Save(ctx context.Context, room chat.Room) error {
	return s.Transact(ctx, func(tx contract.ChatTx) error {
		return tx.Save(room)
	})
}

// FindMessagesByRoom returns the whole history of a room, oldest first.
func (s *ChatStore) FindMessagesByRoom(_ context.Context, key chat.RoomKey) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := messageRoomPrefix(key)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
			}
			message, err := decodeMessage(value)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// FindMessagesPage walks a room's history backwards, newest first.
// The cursor is the time/uuid suffix of the last key returned by the previous page;
// a nil cursor starts from the most recent message. The returned cursor is nil
// once the history is exhausted.
func (s *ChatStore) FindMessagesPage(_ context.Context, key chat.RoomKey, cursor *string) ([]chat.Message, *string, error) {
	var (
		messages []chat.Message
		lastKey  string
		full     bool
	)
	prefix := messageRoomPrefix(key)
	err := s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Everything under the prefix sorts before prefix + 0xFF
			seekKey = append(append([]byte{}, prefix...), 0xFF)
		default:
			seekKey = append(append([]byte{}, prefix...), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if s.limitMessages != nil && len(messages) == *s.limitMessages {
				s.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *s.limitMessages))
				full = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
			}
			message, err := decodeMessage(value)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !full {
		return messages, nil, nil
	}
	return messages, &lastKey, nil
}

// FindAllByMemberNickname lists the rooms a nickname belongs to, in room key order.
func (s *ChatStore) FindAllByMemberNickname(_ context.Context, nickname string) ([]chat.Room, error) {
	var rooms []chat.Room
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(memberPrefix + nickname + ":")
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := chat.RoomKey(strings.TrimPrefix(string(it.Item().Key()), string(prefix)))
			room, found, err := loadRoom(txn, key)
			if err != nil {
				return err
			}
			// A nickname containing ':' shares its prefix with longer nicknames
			if !found || !room.HasMember(nickname) {
				continue
			}
			rooms = append(rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *ChatStore) CheckMembership(ctx context.Context, key chat.RoomKey, nickname string) (bool, error) {
	room, found, err := s.LoadByID(ctx, key)
	if err != nil || !found {
		return false, err
	}
	return room.HasMember(nickname), nil
}

func loadRoom(txn *badger.Txn, key chat.RoomKey) (chat.Room, bool, error) {
	item, err := txn.Get(roomKey(key))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return chat.Room{}, false, nil
	}
	if err != nil {
		return chat.Room{}, false, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return chat.Room{}, false, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	room, err := decodeRoom(value)
	if err != nil {
		return chat.Room{}, false, err
	}
	return room, true, nil
}

type chatTx struct {
	txn *badger.Txn
}

func (t *chatTx) LoadByID(key chat.RoomKey) (chat.Room, bool, error) {
	return loadRoom(t.txn, key)
}

func (t *chatTx) Save(room chat.Room) error {
	if err := t.txn.Set(roomKey(room.Key), encodeRoom(room)); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	for _, m := range room.Members {
		if err := t.txn.Set(memberKey(m.Nickname, room.Key), nil); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (t *chatTx) SaveMessage(message chat.Message) error {
	if err := t.txn.Set(messageKey(message), encodeMessage(message)); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}
