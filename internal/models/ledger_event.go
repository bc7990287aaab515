package models

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent is the audit trail of ledger writes.
type LedgerEvent struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name    string `gorm:"type:varchar(50);not null;index" json:"event"`
	Level   string `gorm:"type:varchar(10);not null" json:"level"`
	Message string `gorm:"type:text;not null" json:"message"`

	Details datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}
