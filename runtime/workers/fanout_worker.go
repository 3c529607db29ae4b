package workers

import (
	"context"
	"log/slog"

	"chat-core/domain/chat"
)

// Deliverer pushes one committed room snapshot to its members.
type Deliverer interface {
	Deliver(ctx context.Context, room chat.Room)
}

// FanoutWorker decouples broadcasting from the request that committed the write:
// Broadcast only enqueues, Run delivers with the worker's own context.
// A full queue drops the snapshot; the next write to the room carries a newer one.
type FanoutWorker struct {
	log       *slog.Logger
	deliverer Deliverer
	rooms     chan chat.Room
}

func NewFanoutWorker(log *slog.Logger, deliverer Deliverer, bufferSize int) *FanoutWorker {
	return &FanoutWorker{log: log, deliverer: deliverer, rooms: make(chan chat.Room, bufferSize)}
}

func (w *FanoutWorker) Broadcast(_ context.Context, room chat.Room) {
	select {
	case w.rooms <- room:
	default:
		w.log.Warn("Fanout queue full, snapshot dropped", "room", room.Key)
	}
}

func (w *FanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		case room := <-w.rooms:
			w.deliverer.Deliver(ctx, room)
		}
	}
}
