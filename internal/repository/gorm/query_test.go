package gormrepository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

type capturedQuery struct {
	sql  string
	vars []any
}

// dryRunStore builds statements against the postgres dialect without a server.
func dryRunStore(t *testing.T) (*Store, *capturedQuery) {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=rulo dbname=rulo sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	last := &capturedQuery{}
	err = gdb.Callback().Query().After("gorm:query").Register("rulo:capture", func(tx *gorm.DB) {
		last.sql = tx.Statement.SQL.String()
		last.vars = append([]any(nil), tx.Statement.Vars...)
	})
	require.NoError(t, err)
	return New(gdb), last
}

func TestListMovements_NewestFirst(t *testing.T) {
	s, last := dryRunStore(t)

	_, err := s.ListMovements(context.Background(), repository.ListMovementsParams{})
	require.NoError(t, err)
	assert.Contains(t, last.sql, `FROM "movimientos"`)
	assert.Contains(t, last.sql, "ORDER BY created_at desc,id desc")
	assert.Contains(t, last.vars, 200)

	asc := true
	_, err = s.ListMovements(context.Background(), repository.ListMovementsParams{OrderBy: "profit", Asc: &asc, Limit: 9000})
	require.NoError(t, err)
	assert.Contains(t, last.sql, "ORDER BY ganancia asc,id asc")
	assert.Contains(t, last.vars, repository.MaxPageLimit)
}

func TestListMovements_Filters(t *testing.T) {
	s, last := dryRunStore(t)
	loc := time.FixedZone("ART", -3*3600)
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	until := time.Date(2025, 3, 31, 23, 59, 0, 0, loc)
	withCommission := true

	_, err := s.ListMovements(context.Background(), repository.ListMovementsParams{
		Since:         &since,
		Until:         &until,
		HasCommission: &withCommission,
	})
	require.NoError(t, err)
	assert.Contains(t, last.sql, "created_at >= $1")
	assert.Contains(t, last.sql, "created_at <= $2")
	assert.Contains(t, last.sql, "tiene_comision = $3")
	require.GreaterOrEqual(t, len(last.vars), 3)
	assert.Equal(t, since.UTC(), last.vars[0])
	assert.Equal(t, until.UTC(), last.vars[1])
	assert.Equal(t, true, last.vars[2])

	_, err = s.CountMovements(context.Background(), repository.ListMovementsParams{HasCommission: &withCommission})
	require.NoError(t, err)
	assert.Contains(t, last.sql, "count(*)")
	assert.Contains(t, last.sql, "tiene_comision = $1")
	assert.NotContains(t, last.sql, "ORDER BY")
}
