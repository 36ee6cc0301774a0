package services

import (
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManualEntryInput is a user-driven cash register entry.
type ManualEntryInput struct {
	Description string
	Value       decimal.Decimal
	Kind        string
	Date        *time.Time
}

// LedgerFilter narrows listing by kind and date range.
type LedgerFilter struct {
	Kind string
	From *time.Time
	To   *time.Time
}

// LedgerService appends manual cash register entries. Entries are never
// updated or deleted; corrections are recorded as opposing entries.
type LedgerService struct {
	db      *gorm.DB
	metrics *MetricsService
}

func NewLedgerService(db *gorm.DB, metrics *MetricsService) *LedgerService {
	return &LedgerService{db: db, metrics: metrics}
}

// Record appends one manual entry.
func (s *LedgerService) Record(accountID uuid.UUID, input ManualEntryInput) (*models.LedgerEntry, error) {
	if input.Description == "" {
		return nil, newValidationError("description is required")
	}
	if input.Kind != models.EntryCredit && input.Kind != models.EntryDebit {
		return nil, newValidationError("kind must be credit or debit")
	}
	if !input.Value.IsPositive() {
		return nil, newValidationError("value must be positive")
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	entry := models.LedgerEntry{
		AccountID:   accountID,
		Reference:   "TXN-" + date.Format("20060102") + "-" + utils.GenerateRandomString(6),
		Description: input.Description,
		Value:       input.Value,
		Kind:        input.Kind,
		Date:        date,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storeError(err)
	}

	s.metrics.Invalidate(accountID)
	return &entry, nil
}

// List returns entries matching the filter, newest first.
func (s *LedgerService) List(accountID uuid.UUID, filter LedgerFilter) ([]models.LedgerEntry, error) {
	query := s.db.Where("account_id = ?", accountID)

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var entries []models.LedgerEntry
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}
