package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_account_phone,priority:1"`

	Name  string `gorm:"not null"`
	// Phone is unique per account, not globally: two businesses can both
	// know the same person.
	Phone string `gorm:"not null;uniqueIndex:idx_account_phone,priority:2"`
	Email string
	Notes string

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
