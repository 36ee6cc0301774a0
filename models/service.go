package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string          `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Duration    int             // in minutes
	Category    string          `gorm:"default:'General'"`
	IsActive    bool            `gorm:"default:true"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
