package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

func TestWebhookNotifier_Posts(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type=%q", r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := &WebhookNotifier{URL: srv.URL, Project: "rulo"}
	err := n.Notify(context.Background(), Event{
		Name:    EventMovementCreated,
		Level:   "info",
		Message: "Movimiento agregado",
		Details: map[string]any{"profit": "5000"},
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got["project"] != "rulo" || got["event"] != EventMovementCreated {
		t.Fatalf("payload=%v", got)
	}
}

func TestWebhookNotifier_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := (&WebhookNotifier{URL: srv.URL}).Notify(context.Background(), Event{Name: "x"})
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("err=%v want HTTPError 502", err)
	}
}

func TestMulti_LogsAndJoinsErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var disabled *WebhookNotifier
	failing := &WebhookNotifier{URL: "http://127.0.0.1:1/unreachable"}
	m := Multi{&LogNotifier{Logger: zap.New(core)}, disabled, failing}

	err := m.Notify(context.Background(), Event{Name: EventStoreFailed, Level: "error", Message: "store failed"})
	if err == nil {
		t.Fatalf("expected joined error from unreachable webhook")
	}
	if logs.FilterMessage("store failed").Len() != 1 {
		t.Fatalf("log entries=%d want 1", logs.Len())
	}
}

type eventRepo struct {
	items []models.LedgerEvent
}

func (r *eventRepo) InsertEvent(_ context.Context, item *models.LedgerEvent) error {
	r.items = append(r.items, *item)
	return nil
}

func (r *eventRepo) ListEvents(context.Context, repository.ListEventsParams) ([]models.LedgerEvent, error) {
	return r.items, nil
}

func TestStoreNotifier(t *testing.T) {
	repo := &eventRepo{}
	n := &StoreNotifier{Repo: repo}
	ctx := context.Background()

	if err := n.Notify(ctx, Event{Name: EventMovementCreated, Level: "info", Message: "movement recorded", Details: map[string]any{"id": 1}}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.Notify(ctx, Event{Name: EventStoreFailed, Level: "error", Message: "down"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("events=%d want 1", len(repo.items))
	}
	if got := string(repo.items[0].Details); got != `{"id":1}` {
		t.Fatalf("details=%s", got)
	}
}
