package models

import (
	"time"

	"vivv-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Phone    string

	BusinessName string `gorm:"not null"`

	// Paid flips to true on the external payment confirmation signal.
	// Until then access is gated by TrialExpiresAt.
	Paid           bool `gorm:"default:false"`
	TrialExpiresAt *time.Time

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	a.ID = uuid.New()
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
