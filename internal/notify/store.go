package notify

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
)

// StoreNotifier appends events to the ledger_events table. Store failures
// are skipped: the store that just failed is not expected to take the record.
type StoreNotifier struct {
	Repo repository.EventRepository
}

func (n *StoreNotifier) Notify(ctx context.Context, ev Event) error {
	if n == nil || n.Repo == nil || ev.Name == EventStoreFailed {
		return nil
	}
	item := &models.LedgerEvent{
		Name:    ev.Name,
		Level:   ev.Level,
		Message: ev.Message,
	}
	if len(ev.Details) > 0 {
		raw, err := json.Marshal(ev.Details)
		if err != nil {
			return err
		}
		item.Details = datatypes.JSON(raw)
	}
	return n.Repo.InsertEvent(ctx, item)
}
