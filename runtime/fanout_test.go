package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"chat-core/contract"
	"chat-core/domain/chat"
	"chat-core/errors"
	"chat-core/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func twoPartyRoom() chat.Room {
	return chat.Room{
		Key: "key",
		Members: []chat.Member{
			{Nickname: "alice", Name: "Alice"},
			{Nickname: "bob", Name: "Bob"},
		},
		LatestMessage:  "hi",
		LatestActivity: time.Now().UTC(),
	}
}

func TestFanout_Deliver_EachMemberGetsItsOwnView(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	aliceSink := mocks.NewMockEventSink(ctrl)
	bobSink := mocks.NewMockEventSink(ctrl)
	registry := NewRegistry()
	registry.Subscribe("alice", "s1", aliceSink)
	registry.Subscribe("bob", "s2", bobSink)
	fanout := NewFanout(log, registry, nil, time.Second)

	// Then alice sees bob's name and bob sees alice's name
	aliceSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s chat.RoomSummary) error {
			req.Equal("Bob", s.Name)
			req.Equal("hi", s.LatestMessage)
			return nil
		}).Times(1)
	bobSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s chat.RoomSummary) error {
			req.Equal("Alice", s.Name)
			return nil
		}).Times(1)

	// When the room is delivered
	fanout.Deliver(context.Background(), twoPartyRoom())
}

func TestFanout_Deliver_FailureIsIsolatedPerMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	aliceSink := mocks.NewMockEventSink(ctrl)
	bobSink := mocks.NewMockEventSink(ctrl)
	registry := NewRegistry()
	registry.Subscribe("alice", "s1", aliceSink)
	registry.Subscribe("bob", "s2", bobSink)
	fanout := NewFanout(log, registry, nil, time.Second)

	// Given alice's channel is broken
	aliceSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(fmt.Errorf("broken pipe")).Times(1)
	// Then bob still receives the snapshot
	bobSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	fanout.Deliver(context.Background(), twoPartyRoom())
}

func TestFanout_PushToUser_WrapsSinkErrors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := mocks.NewMockEventSink(ctrl)
	registry := NewRegistry()
	registry.Subscribe("alice", "s1", sink)
	fanout := NewFanout(log, registry, nil, 20*time.Millisecond)

	// Given a sink that blocks until its deadline
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ chat.RoomSummary) error {
			<-ctx.Done()
			return ctx.Err()
		}).Times(1)

	err := fanout.PushToUser(context.Background(), "alice", chat.RoomSummary{Key: "key"})

	req.ErrorIs(err, errors.ErrFanoutDelivery)
}

func TestFanout_PushToUser_OfflineMemberIsNotified(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := mocks.NewMockNotifier(ctrl)
	fanout := NewFanout(log, NewRegistry(), notifier, time.Second)

	notifier.EXPECT().Send(gomock.Any(), contract.Notification{
		Nickname: "bob",
		Room:     "key",
		Title:    "Alice",
		Body:     "hi",
	}).Return(nil).Times(1)

	err := fanout.PushToUser(context.Background(), "bob", chat.RoomSummary{Key: "key", Name: "Alice", LatestMessage: "hi"})
	req.NoError(err)
}

func TestFanout_PushToUser_NotifierFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := mocks.NewMockNotifier(ctrl)
	fanout := NewFanout(log, NewRegistry(), notifier, time.Second)

	notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(fmt.Errorf("provider down")).Times(1)

	err := fanout.PushToUser(context.Background(), "bob", chat.RoomSummary{Key: "key"})
	req.ErrorIs(err, errors.ErrFanoutDelivery)
}

func TestFanout_PushToUser_KeepsProviderDeliveryError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := mocks.NewMockNotifier(ctrl)
	fanout := NewFanout(log, NewRegistry(), notifier, time.Second)

	// Given a notifier whose error already carries the delivery sentinel
	providerErr := fmt.Errorf("%w: push to bob: timeout", errors.ErrFanoutDelivery)
	notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(providerErr).Times(1)

	// When pushing to an offline user
	err := fanout.PushToUser(context.Background(), "bob", chat.RoomSummary{Key: "key"})

	// Then the error is returned as is, without a second prefix
	req.Same(providerErr, err)
	req.Equal("fanout delivery failed: push to bob: timeout", err.Error())
}

func TestFanout_PushToUser_OfflineWithoutNotifier(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fanout := NewFanout(log, NewRegistry(), nil, time.Second)

	req.NoError(fanout.PushToUser(context.Background(), "bob", chat.RoomSummary{Key: "key"}))
}
