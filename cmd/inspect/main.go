// Command inspect prints what the chat store holds, without writing to it.
//
//	inspect rooms <nickname>   room list of a user, most recent first
//	inspect events             the event log, oldest first
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"chat-core/domain/chat"
	"chat-core/infrastructure/storage"
	"chat-core/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: inspect rooms <nickname> | inspect events")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// BypassLockGuard lets the inspector read while the server holds the lock
	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	log := logs.GetLoggerFromLevel(slog.LevelWarn)
	ctx := context.Background()
	out := newPrinter(os.Stdout, cfg.Colours)

	switch args[0] {
	case "rooms":
		if len(args) < 2 {
			return fmt.Errorf("usage: inspect rooms <nickname>")
		}
		summaries, err := roomsOf(ctx, log, db, args[1])
		if err != nil {
			return err
		}
		out.rooms(summaries)
	case "events":
		records, err := storage.NewEventLog(db, log).Since(ctx, time.Time{}, cfg.Limit)
		if err != nil {
			return err
		}
		out.events(records)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

// roomsOf lists rooms through the chat service so the output matches the API.
func roomsOf(ctx context.Context, log *slog.Logger, db *badger.DB, nickname string) ([]chat.RoomSummary, error) {
	store := storage.NewChatStore(db, log, nil, 0)
	svc := services.NewChatService(log, store, nil, nil, nil, services.NewAuthService(log, store))
	return svc.ListRoomsForUser(ctx, nickname)
}
