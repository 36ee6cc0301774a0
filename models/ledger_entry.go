package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryCredit = "credit"
	EntryDebit  = "debit"
)

// LedgerEntry is append-only: entries are created by manual cash-register
// input or by booking reconciliation, and only ever summed afterwards.
type LedgerEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Reference   string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Kind        string          `gorm:"type:varchar(10);not null;index"`
	Date        time.Time       `gorm:"index;not null"`

	// Set when the entry was produced by completing a booking. The unique
	// index rejects a second credit for the same booking.
	BookingID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	CreatedAt time.Time
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
