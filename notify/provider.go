// Package notify is the gateway to the external push provider.
// One Provider is created at startup, injected where pushes are sent, and closed at shutdown.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"chat-core/contract"
	"chat-core/errors"

	"github.com/go-playground/validator/v10"
)

const (
	KindLog     = "log"
	KindWebhook = "webhook"
)

type Config struct {
	Kind       string        `validate:"required,oneof=log webhook"`
	WebhookURL string        `validate:"required_if=Kind webhook,omitempty,url"`
	// Timeout bounds each webhook call and must be set for that kind.
	Timeout    time.Duration `validate:"gte=0,required_if=Kind webhook"`
}

// transport is the actual delivery once the handle checks pass.
type transport interface {
	deliver(ctx context.Context, n contract.Notification) error
}

// Provider is the process-wide push handle.
type Provider struct {
	log       *slog.Logger
	kind      string
	transport transport
	closed    atomic.Bool
}

func New(log *slog.Logger, cfg Config) (*Provider, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	p := &Provider{log: log, kind: cfg.Kind}
	switch cfg.Kind {
	case KindLog:
		p.transport = logTransport{log: log}
	case KindWebhook:
		p.transport = &webhookTransport{
			url:    cfg.WebhookURL,
			client: &http.Client{Timeout: cfg.Timeout},
		}
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownProvider, cfg.Kind)
	}
	log.Info("Push provider initialized", "kind", cfg.Kind)
	return p, nil
}

// Send pushes n. Every failure wraps ErrFanoutDelivery.
func (p *Provider) Send(ctx context.Context, n contract.Notification) error {
	if p.closed.Load() {
		return fmt.Errorf("%w: %w", errors.ErrFanoutDelivery, errors.ErrProviderClosed)
	}
	if err := p.transport.deliver(ctx, n); err != nil {
		return fmt.Errorf("%w: push to %s: %v", errors.ErrFanoutDelivery, n.Nickname, err)
	}
	return nil
}

// Close is idempotent. Sends after Close fail.
func (p *Provider) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		p.log.Info("Push provider closed", "kind", p.kind)
	}
	return nil
}

type logTransport struct {
	log *slog.Logger
}

func (t logTransport) deliver(_ context.Context, n contract.Notification) error {
	t.log.Info("Push notification", "nickname", n.Nickname, "room", n.Room, "title", n.Title, "body", n.Body)
	return nil
}

type webhookPayload struct {
	Nickname string `json:"nickname"`
	Room     string `json:"room"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

type webhookTransport struct {
	url    string
	client *http.Client
}

func (t *webhookTransport) deliver(ctx context.Context, n contract.Notification) error {
	body, err := json.Marshal(webhookPayload{
		Nickname: n.Nickname,
		Room:     n.Room.String(),
		Title:    n.Title,
		Body:     n.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook answered %s", resp.Status)
	}
	return nil
}
