package main

import (
	"bytes"
	"testing"
	"time"

	"chat-core/domain/chat"
	"chat-core/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Rooms(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	newPrinter(&buf, false).rooms([]chat.RoomSummary{
		{Key: "a83ab2505ace9a8705ea", Name: "Bob", Members: []string{"alice", "bob"}, LatestMessage: "hi", LatestActivity: at},
	})

	out := buf.String()
	req.Contains(out, "LATEST MESSAGE")
	req.Contains(out, "a83ab2505ace")
	req.NotContains(out, "a83ab2505ace9")
	req.Contains(out, "alice,bob")
	req.Contains(out, "2026-05-01T12:00:00Z")
}

func TestPrinter_Events(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	newPrinter(&buf, false).events([]event.Record{
		{ID: uuid.New(), Event: event.RoomCreated{Room: "room", Members: []string{"alice", "bob"}, At: at}},
		{ID: uuid.New(), Event: event.MessageAppended{Room: "room", Sender: "alice", Content: "hello", At: at}},
	})

	out := buf.String()
	req.Contains(out, "RoomCreated")
	req.Contains(out, "MessageAppended")
	req.Contains(out, "alice: hello")
}

func TestTruncate(t *testing.T) {
	req := require.New(t)
	req.Equal("short", truncate("short"))
	long := truncate(string(bytes.Repeat([]byte("a"), 100)))
	req.Len([]rune(long), maxCellLength)
}
