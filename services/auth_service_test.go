package services

import (
	"context"
	"log/slog"
	"testing"

	"chat-core/domain/chat"
	"chat-core/errors"
	"chat-core/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_IsMember(t *testing.T) {
	ctx := context.Background()
	key, _, err := chat.RoomKeyFromToken("alice_bob")
	require.NoError(t, err)

	newService := func(t *testing.T) (*AuthService, *mocks.MockChatStore) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockChatStore(ctrl)
		return NewAuthService(logs.GetLoggerFromLevel(slog.LevelDebug), store), store
	}

	t.Run("should permit anyone on a room that does not exist", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), key).Return(false, nil).Times(2)
		store.EXPECT().CheckMembership(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.True(svc.IsMember(ctx, key, "alice"))
		req.True(svc.IsMember(ctx, key, "mallory"))
	})

	t.Run("should permit a member of an existing room", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), key).Return(true, nil)
		store.EXPECT().CheckMembership(gomock.Any(), key, "alice").Return(true, nil)

		req.True(svc.IsMember(ctx, key, "alice"))
	})

	t.Run("should deny a non member of an existing room", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), key).Return(true, nil)
		store.EXPECT().CheckMembership(gomock.Any(), key, "mallory").Return(false, nil)

		req.False(svc.IsMember(ctx, key, "mallory"))
	})

	t.Run("should deny when the store fails", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), key).Return(false, errors.ErrStoreUnavailable)

		req.False(svc.IsMember(ctx, key, "alice"))
	})

	t.Run("should deny on a malformed token", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), gomock.Any()).Times(0)

		req.False(svc.IsMemberOfRoom(ctx, "_alice", "alice"))
	})

	t.Run("should resolve the token of an unknown room", func(t *testing.T) {
		req := require.New(t)
		svc, store := newService(t)
		store.EXPECT().ExistsByID(gomock.Any(), key).Return(false, nil)

		req.True(svc.IsMemberOfRoom(ctx, "bob_alice", "carol"))
	})
}
