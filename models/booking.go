package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Name and price snapshots taken at creation time. Renaming a client
	// or repricing a service never changes an existing booking.
	ClientName  string          `gorm:"not null"`
	ServiceName string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Date      time.Time `gorm:"index;not null"`
	StartTime string    `gorm:"type:varchar(5);not null"` // "15:04"

	Status      string `gorm:"type:varchar(20);default:'pending';index"`
	CompletedAt *time.Time
	CancelledAt *time.Time

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
