// Package runtime wires live delivery: who is connected, and how a committed
// room snapshot reaches each member. It holds no business rules.
package runtime

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"chat-core/contract"
	"chat-core/domain/chat"
	"chat-core/errors"
)

// Fanout pushes a room snapshot to every member.
// Members with live sessions get it on each of their sinks; members without one
// get a push notification when a notifier is configured.
// Delivery is best effort: a failing member never stops the others.
type Fanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	notifier    contract.Notifier
	sinkTimeout time.Duration
}

func NewFanout(log *slog.Logger, registry contract.IRegistry, notifier contract.Notifier, sinkTimeout time.Duration) *Fanout {
	return &Fanout{log: log, registry: registry, notifier: notifier, sinkTimeout: sinkTimeout}
}

// Deliver sends each member its own view of the room and logs per-member failures.
func (f *Fanout) Deliver(ctx context.Context, room chat.Room) {
	for _, member := range room.Members {
		if err := f.PushToUser(ctx, member.Nickname, chat.SummaryFor(room, member.Nickname)); err != nil {
			f.log.Warn("Room snapshot not delivered", "room", room.Key, "nickname", member.Nickname, "error", err)
			continue
		}
		f.log.Debug("Room snapshot delivered", "room", room.Key, "nickname", member.Nickname)
	}
}

// PushToUser delivers one snapshot to one user. Errors wrap ErrFanoutDelivery.
func (f *Fanout) PushToUser(ctx context.Context, nickname string, summary chat.RoomSummary) error {
	sinks := f.registry.GetSinksForUser(nickname)
	if len(sinks) == 0 {
		return f.notify(ctx, nickname, summary)
	}

	var errs []error
	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, f.sinkTimeout)
		err := sink.Consume(sinkCtx, summary)
		cancel()
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %d/%d sessions of %s: %v",
			errors.ErrFanoutDelivery, len(errs), len(sinks), nickname, goerrors.Join(errs...))
	}
	return nil
}

func (f *Fanout) notify(ctx context.Context, nickname string, summary chat.RoomSummary) error {
	if f.notifier == nil {
		return nil
	}
	title := summary.Name
	if title == "" {
		title = "New message"
	}
	err := f.notifier.Send(ctx, contract.Notification{
		Nickname: nickname,
		Room:     summary.Key,
		Title:    title,
		Body:     summary.LatestMessage,
	})
	if err == nil || goerrors.Is(err, errors.ErrFanoutDelivery) {
		return err
	}
	return fmt.Errorf("%w: push to %s: %v", errors.ErrFanoutDelivery, nickname, err)
}
