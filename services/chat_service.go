//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-core/contract"
	"chat-core/domain/chat"
	"chat-core/domain/event"
	"chat-core/errors"

	"github.com/samber/lo"
)

type IChatService interface {
	ResolveOrCreateRoom(ctx context.Context, participantIDs []string) (chat.RoomView, error)
	ResolveRoom(ctx context.Context, cmd chat.ResolveRoomCommand) (chat.RoomView, error)
	AppendMessage(ctx context.Context, cmd chat.AppendMessageCommand) (chat.Message, error)
	ListRoomsForUser(ctx context.Context, nickname string) ([]chat.RoomSummary, error)
	GetMessages(ctx context.Context, cmd chat.GetMessagesCommand) ([]chat.Message, *string, error)
}

// ChatService resolves rooms, appends messages and lists rooms.
// Writes go through one store transaction; fan-out and event publishing
// only happen after the commit and never fail the call.
type ChatService struct {
	log       *slog.Logger
	store     contract.ChatStore
	fanout    contract.FanoutSink
	events    contract.EventLog
	moderator contract.Moderator
	guard     IMembershipGuard
	now       func() time.Time
}

// NewChatService builds the chat core. moderator may be nil when no censoring is configured.
func NewChatService(
	log *slog.Logger,
	store contract.ChatStore,
	fanout contract.FanoutSink,
	events contract.EventLog,
	moderator contract.Moderator,
	guard IMembershipGuard,
) *ChatService {
	return &ChatService{
		log:       log,
		store:     store,
		fanout:    fanout,
		events:    events,
		moderator: moderator,
		guard:     guard,
		now:       time.Now,
	}
}

// ResolveOrCreateRoom returns the room of these participants with its history,
// creating it first if nobody has opened it yet. Calling it twice yields the same room.
func (s *ChatService) ResolveOrCreateRoom(ctx context.Context, participantIDs []string) (chat.RoomView, error) {
	if lo.Contains(participantIDs, "") {
		return chat.RoomView{}, fmt.Errorf("%w: empty participant id", errors.ErrInvalidInput)
	}
	key, err := chat.DeriveRoomKey(participantIDs)
	if err != nil {
		return chat.RoomView{}, err
	}

	var room chat.Room
	var created bool
	err = s.store.Transact(ctx, func(tx contract.ChatTx) error {
		found, ok, err := tx.LoadByID(key)
		if err != nil {
			return err
		}
		if ok {
			room, created = found, false
			return nil
		}
		room, created = chat.NewRoom(key, participantIDs, s.now()), true
		return tx.Save(room)
	})
	if err != nil {
		return chat.RoomView{}, err
	}

	if created {
		s.log.Info("Room created", "room", key, "members", len(room.Members))
		s.publish(ctx, event.RoomCreated{Room: key, Members: room.Nicknames(), At: room.LatestActivity})
	}

	messages, err := s.store.FindMessagesByRoom(ctx, key)
	if err != nil {
		return chat.RoomView{}, err
	}
	return chat.RoomView{Room: room, Messages: messages}, nil
}

// ResolveRoom is ResolveOrCreateRoom from a raw token, on behalf of a caller.
func (s *ChatService) ResolveRoom(ctx context.Context, cmd chat.ResolveRoomCommand) (chat.RoomView, error) {
	if err := chat.Validate(cmd); err != nil {
		return chat.RoomView{}, err
	}
	key, ids, err := chat.RoomKeyFromToken(cmd.RoomToken)
	if err != nil {
		return chat.RoomView{}, err
	}
	if !s.guard.IsMemberOfRoom(ctx, cmd.RoomToken, cmd.Caller) {
		return chat.RoomView{}, fmt.Errorf("%w: %s on room %s", errors.ErrAccessDenied, cmd.Caller, key)
	}
	return s.ResolveOrCreateRoom(ctx, ids)
}

// AppendMessage stores a message and updates the room summary in one transaction,
// then broadcasts the room to its members. The room must already exist.
func (s *ChatService) AppendMessage(ctx context.Context, cmd chat.AppendMessageCommand) (chat.Message, error) {
	if err := chat.Validate(cmd); err != nil {
		return chat.Message{}, err
	}
	key, _, err := chat.RoomKeyFromToken(cmd.RoomToken)
	if err != nil {
		return chat.Message{}, err
	}

	content := cmd.Content
	if s.moderator != nil {
		content = s.moderator.Censor(content)
	}

	var room chat.Room
	var message chat.Message
	err = s.store.Transact(ctx, func(tx contract.ChatTx) error {
		found, ok, err := tx.LoadByID(key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, key)
		}
		sender, ok := found.FindMember(cmd.Sender)
		if !ok {
			return fmt.Errorf("%w: %s in room %s", errors.ErrSenderNotMember, cmd.Sender, key)
		}

		now := s.now()
		message = chat.NewMessage(key, sender, content, now)
		found.Touch(content, now)
		if err := tx.Save(found); err != nil {
			return err
		}
		if err := tx.SaveMessage(message); err != nil {
			return err
		}
		room = found
		return nil
	})
	if err != nil {
		return chat.Message{}, err
	}

	s.log.Debug("Message appended", "room", key, "nickname", cmd.Sender, "message", message.ID)
	s.fanout.Broadcast(ctx, room)
	s.publish(ctx, event.MessageAppended{
		MessageID: message.ID,
		Room:      key,
		Sender:    message.Sender.Nickname,
		Content:   message.Content,
		At:        message.At,
	})
	return message, nil
}

// ListRoomsForUser returns one summary per room of the user, as seen by that user,
// most recently active first.
func (s *ChatService) ListRoomsForUser(ctx context.Context, nickname string) ([]chat.RoomSummary, error) {
	if nickname == "" {
		return nil, fmt.Errorf("%w: empty nickname", errors.ErrInvalidInput)
	}
	rooms, err := s.store.FindAllByMemberNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	rooms = lo.UniqBy(rooms, func(r chat.Room) chat.RoomKey { return r.Key })
	summaries := lo.Map(rooms, func(r chat.Room, _ int) chat.RoomSummary {
		return chat.SummaryFor(r, nickname)
	})
	chat.SortByActivity(summaries)
	return summaries, nil
}

// GetMessages returns a page of history, newest first, and the cursor of the next page.
func (s *ChatService) GetMessages(ctx context.Context, cmd chat.GetMessagesCommand) ([]chat.Message, *string, error) {
	if err := chat.Validate(cmd); err != nil {
		return nil, nil, err
	}
	key, _, err := chat.RoomKeyFromToken(cmd.RoomToken)
	if err != nil {
		return nil, nil, err
	}
	if !s.guard.IsMemberOfRoom(ctx, cmd.RoomToken, cmd.Caller) {
		return nil, nil, fmt.Errorf("%w: %s on room %s", errors.ErrAccessDenied, cmd.Caller, key)
	}
	return s.store.FindMessagesPage(ctx, key, cmd.Cursor)
}

func (s *ChatService) publish(ctx context.Context, evt event.DomainEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("Event not published", "room", evt.RoomKey(), "kind", evt.Kind(), "error", err)
	}
}
