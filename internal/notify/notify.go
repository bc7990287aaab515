// Package notify tells the user what happened to their ledger: a movement
// was saved, removed, or the store refused the operation.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	EventMovementCreated = "movement.created"
	EventMovementDeleted = "movement.deleted"
	EventStoreFailed     = "movement.store_failed"
)

type Event struct {
	Name    string         `json:"event"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// WebhookNotifier posts every event as JSON to URL.
type WebhookNotifier struct {
	URL     string
	Project string
	HTTP    *http.Client
}

type webhookPayload struct {
	Project string `json:"project"`
	Event
}

func (n *WebhookNotifier) Notify(ctx context.Context, ev Event) error {
	if n == nil || n.URL == "" {
		return nil
	}
	b, err := json.Marshal(webhookPayload{Project: n.Project, Event: ev})
	if err != nil {
		return err
	}
	client := n.HTTP
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode}
	}
	return nil
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return "webhook http status " + http.StatusText(e.StatusCode)
}

// LogNotifier writes events to the service log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	if n == nil || n.Logger == nil {
		return nil
	}
	fields := []zap.Field{zap.String("event", ev.Name)}
	for k, v := range ev.Details {
		fields = append(fields, zap.Any(k, v))
	}
	switch ev.Level {
	case "error":
		n.Logger.Error(ev.Message, fields...)
	case "warn":
		n.Logger.Warn(ev.Message, fields...)
	default:
		n.Logger.Info(ev.Message, fields...)
	}
	return nil
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
