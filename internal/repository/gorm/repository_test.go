package gormrepository

import (
	"context"
	"errors"
	"testing"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

func TestParseOrder(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"profit":    "ganancia",
		" Capital ": "capital_invertido",
		"date":      "fecha",
		"id; drop":  "",
	}
	for in, want := range cases {
		if got := parseOrder(in); got != want {
			t.Fatalf("parseOrder(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestNormalizeOffset(t *testing.T) {
	if got := normalizeOffset(-4); got != 0 {
		t.Fatalf("offset=%d want=0", got)
	}
}

func TestStoreWithoutDatabase(t *testing.T) {
	var s *Store
	err := s.InsertMovement(context.Background(), &models.Movement{})
	if !errors.Is(err, repository.ErrStore) {
		t.Fatalf("err=%v want ErrStore", err)
	}
	if _, err := New(nil).ListMovements(context.Background(), repository.ListMovementsParams{}); !errors.Is(err, repository.ErrStore) {
		t.Fatalf("err=%v want ErrStore", err)
	}
}

func TestEventsWithoutDatabase(t *testing.T) {
	s := New(nil)
	if err := s.InsertEvent(context.Background(), &models.LedgerEvent{Name: "movement.created"}); !errors.Is(err, repository.ErrStore) {
		t.Fatalf("err=%v want ErrStore", err)
	}
	if _, err := s.ListEvents(context.Background(), repository.ListEventsParams{}); !errors.Is(err, repository.ErrStore) {
		t.Fatalf("err=%v want ErrStore", err)
	}
}
