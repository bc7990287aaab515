package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrap(t *testing.T) {
	if Wrap("insert movement", nil) != nil {
		t.Fatalf("wrap(nil) should stay nil")
	}
	cause := errors.New("connection refused")
	err := Wrap("insert movement", cause)
	if !errors.Is(err, ErrStore) {
		t.Fatalf("err=%v want ErrStore", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err=%v lost its cause", err)
	}
	if got := err.Error(); got != "insert movement: connection refused" {
		t.Fatalf("message=%q", got)
	}
	if again := Wrap("list movements", err); again != err {
		t.Fatalf("double wrap changed error: %v", again)
	}
}

func TestIsSchemaMissing(t *testing.T) {
	missing := fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01", Message: `relation "movimientos" does not exist`})
	if !IsSchemaMissing(Wrap("list movements", missing)) {
		t.Fatalf("42P01 not recognized")
	}
	other := &pgconn.PgError{Code: "23505"}
	if IsSchemaMissing(other) {
		t.Fatalf("unique violation reported as missing schema")
	}
	if IsSchemaMissing(errors.New("boom")) {
		t.Fatalf("plain error reported as missing schema")
	}
}

func TestPageLimit(t *testing.T) {
	cases := []struct{ limit, fallback, want int }{
		{0, 200, 200},
		{-3, 50, 50},
		{25, 200, 25},
		{500, 200, 500},
		{1000, 200, MaxPageLimit},
		{0, 900, MaxPageLimit},
	}
	for _, tc := range cases {
		if got := PageLimit(tc.limit, tc.fallback); got != tc.want {
			t.Fatalf("PageLimit(%d, %d)=%d want=%d", tc.limit, tc.fallback, got, tc.want)
		}
	}
}
