package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-core/contract"
	"chat-core/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidConfig(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing kind", Config{}},
		{"unknown kind", Config{Kind: "firebase"}},
		{"webhook without url", Config{Kind: KindWebhook}},
		{"webhook with bad url", Config{Kind: KindWebhook, WebhookURL: "not a url", Timeout: time.Second}},
		{"webhook without timeout", Config{Kind: KindWebhook, WebhookURL: "http://localhost:8080/push"}},
		{"negative timeout", Config{Kind: KindLog, Timeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(log, tt.cfg)
			require.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestProvider_Log(t *testing.T) {
	req := require.New(t)
	p, err := New(logs.GetLoggerFromLevel(slog.LevelDebug), Config{Kind: KindLog})
	req.NoError(err)

	req.NoError(p.Send(context.Background(), contract.Notification{Nickname: "bob", Room: "r1", Title: "alice", Body: "hi"}))

	// After Close the handle refuses to send
	req.NoError(p.Close())
	req.NoError(p.Close())
	err = p.Send(context.Background(), contract.Notification{Nickname: "bob"})
	req.ErrorIs(err, errors.ErrProviderClosed)
	req.ErrorIs(err, errors.ErrFanoutDelivery)
}

func TestProvider_Webhook(t *testing.T) {
	req := require.New(t)
	received := make(chan webhookPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- payload
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p, err := New(logs.GetLoggerFromLevel(slog.LevelDebug), Config{Kind: KindWebhook, WebhookURL: srv.URL, Timeout: time.Second})
	req.NoError(err)
	defer p.Close()

	// When a notification is sent
	err = p.Send(context.Background(), contract.Notification{Nickname: "bob", Room: "r1", Title: "alice", Body: "hi"})

	// Then the webhook receives it as JSON
	req.NoError(err)
	req.Equal(webhookPayload{Nickname: "bob", Room: "r1", Title: "alice", Body: "hi"}, <-received)
}

func TestProvider_WebhookRejects(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := New(logs.GetLoggerFromLevel(slog.LevelDebug), Config{Kind: KindWebhook, WebhookURL: srv.URL, Timeout: time.Second})
	req.NoError(err)

	err = p.Send(context.Background(), contract.Notification{Nickname: "bob"})
	req.ErrorIs(err, errors.ErrFanoutDelivery)
}
