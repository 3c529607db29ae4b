package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-core/domain/chat"
	"chat-core/errors"
	"chat-core/infrastructure/storage"
	"chat-core/mocks"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStoreBackedService(t *testing.T) (*ChatService, *storage.ChatStore, *storage.EventLog) {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelInfo)
	store := storage.NewChatStore(db, log, nil, 100)
	events := storage.NewEventLog(db, log)
	fanout := mocks.NewMockFanoutSink(gomock.NewController(t))
	fanout.EXPECT().Broadcast(gomock.Any(), gomock.Any()).AnyTimes()
	return NewChatService(log, store, fanout, events, nil, NewAuthService(log, store)), store, events
}

func TestChatService_Store_IdempotentCreation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, store, events := newStoreBackedService(t)

	// When the same participants resolve their room twice, in any order
	first, err := svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
	req.NoError(err)
	second, err := svc.ResolveOrCreateRoom(ctx, []string{"bob", "alice"})
	req.NoError(err)

	// Then exactly one room exists
	req.Equal(first.Room.Key, second.Room.Key)
	rooms, err := store.FindAllByMemberNickname(ctx, "alice")
	req.NoError(err)
	req.Len(rooms, 1)

	records, err := events.Since(ctx, time.Time{}, 0)
	req.NoError(err)
	req.Len(records, 1)
}

func TestChatService_Store_ConcurrentCreation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, store, _ := newStoreBackedService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
			req.NoError(err)
		}()
	}
	wg.Wait()

	rooms, err := store.FindAllByMemberNickname(ctx, "bob")
	req.NoError(err)
	req.Len(rooms, 1)
}

func TestChatService_Store_AppendMessage(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, store, _ := newStoreBackedService(t)

	view, err := svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
	req.NoError(err)
	before := time.Now()

	_, err = svc.AppendMessage(ctx, chat.AppendMessageCommand{RoomToken: "alice_bob", Sender: "alice", Content: "hi"})
	req.NoError(err)

	room, found, err := store.LoadByID(ctx, view.Room.Key)
	req.NoError(err)
	req.True(found)
	req.Equal("hi", room.LatestMessage)
	req.False(room.LatestActivity.Before(before))

	messages, err := store.FindMessagesByRoom(ctx, view.Room.Key)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(chat.StatusSent, messages[0].Status)
	req.Equal("alice", messages[0].Sender.Nickname)
	req.Equal("hi", messages[0].Content)
}

func TestChatService_Store_FailedAppendsWriteNothing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, store, _ := newStoreBackedService(t)

	// Given no room yet
	_, err := svc.AppendMessage(ctx, chat.AppendMessageCommand{RoomToken: "alice_bob", Sender: "alice", Content: "hi"})
	req.ErrorIs(err, errors.ErrRoomNotFound)
	key, _, err := chat.RoomKeyFromToken("alice_bob")
	req.NoError(err)
	exists, err := store.ExistsByID(ctx, key)
	req.NoError(err)
	req.False(exists)

	// Given the room, a stranger cannot post
	_, err = svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
	req.NoError(err)
	_, err = svc.AppendMessage(ctx, chat.AppendMessageCommand{RoomToken: "alice_bob", Sender: "mallory", Content: "hi"})
	req.ErrorIs(err, errors.ErrSenderNotMember)

	messages, err := store.FindMessagesByRoom(ctx, key)
	req.NoError(err)
	req.Empty(messages)
	room, _, err := store.LoadByID(ctx, key)
	req.NoError(err)
	req.Empty(room.LatestMessage)
}

func TestChatService_Store_ConcurrentAppends(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, store, _ := newStoreBackedService(t)
	view, err := svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
	req.NoError(err)

	// When both members post at the same time
	const perMember = 5
	var wg sync.WaitGroup
	for _, sender := range []string{"alice", "bob"} {
		for i := 0; i < perMember; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.AppendMessage(ctx, chat.AppendMessageCommand{
					RoomToken: "bob_alice",
					Sender:    sender,
					Content:   fmt.Sprintf("%s-%d", sender, i),
				})
				req.NoError(err)
			}()
		}
	}
	wg.Wait()

	// Then no message is lost and the summary matches one of them
	messages, err := store.FindMessagesByRoom(ctx, view.Room.Key)
	req.NoError(err)
	req.Len(messages, 2*perMember)

	room, _, err := store.LoadByID(ctx, view.Room.Key)
	req.NoError(err)
	contents := make([]string, 0, len(messages))
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	req.Contains(contents, room.LatestMessage)
}

func TestChatService_Store_ListRoomsForUser(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _, _ := newStoreBackedService(t)
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	_, err := svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob"})
	req.NoError(err)
	_, err = svc.ResolveOrCreateRoom(ctx, []string{"alice", "bob", "carol"})
	req.NoError(err)
	_, err = svc.AppendMessage(ctx, chat.AppendMessageCommand{RoomToken: "alice_bob", Sender: "bob", Content: "latest"})
	req.NoError(err)

	summaries, err := svc.ListRoomsForUser(ctx, "alice")
	req.NoError(err)
	req.Len(summaries, 2)
	req.Equal("latest", summaries[0].LatestMessage)
	req.Len(summaries[0].Members, 2)
	req.Len(summaries[1].Members, 3)
}
