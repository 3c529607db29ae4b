//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"chat-core/contract"
	"chat-core/domain/chat"
)

type IMembershipGuard interface {
	IsMember(ctx context.Context, key chat.RoomKey, nickname string) bool
	IsMemberOfRoom(ctx context.Context, token, nickname string) bool
}

// AuthService decides whether a caller may act within a room.
type AuthService struct {
	log   *slog.Logger
	store contract.ChatStore
}

func NewAuthService(log *slog.Logger, store contract.ChatStore) *AuthService {
	return &AuthService{log: log, store: store}
}

// IsMember allows any caller on a room that does not exist yet, so the
// participants can create it lazily. This also lets a non-participant through
// for an unknown key: nothing checks the nickname against the key beforehand.
// Store failures deny.
func (s *AuthService) IsMember(ctx context.Context, key chat.RoomKey, nickname string) bool {
	exists, err := s.store.ExistsByID(ctx, key)
	if err != nil {
		s.log.Error("Membership check failed", "room", key, "nickname", nickname, "error", err)
		return false
	}
	if !exists {
		s.log.Warn("Room not created yet, access granted", "room", key, "nickname", nickname)
		return true
	}
	ok, err := s.store.CheckMembership(ctx, key, nickname)
	if err != nil {
		s.log.Error("Membership check failed", "room", key, "nickname", nickname, "error", err)
		return false
	}
	return ok
}

// IsMemberOfRoom is IsMember for a raw participant token. A malformed token denies.
func (s *AuthService) IsMemberOfRoom(ctx context.Context, token, nickname string) bool {
	key, _, err := chat.RoomKeyFromToken(token)
	if err != nil {
		s.log.Debug("Malformed room token", "token", token, "error", err)
		return false
	}
	return s.IsMember(ctx, key, nickname)
}
