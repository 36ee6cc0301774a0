package services

import (
	"errors"
	"fmt"
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconciliationService enforces the exactly-once pairing between a
// completed booking and its ledger credit. Both effects happen in one
// transaction: a failed ledger write leaves the booking pending, and a
// lost status race leaves the ledger untouched.
type ReconciliationService struct {
	db      *gorm.DB
	metrics *MetricsService
}

func NewReconciliationService(db *gorm.DB, metrics *MetricsService) *ReconciliationService {
	return &ReconciliationService{db: db, metrics: metrics}
}

// CompleteBooking transitions a pending booking to completed and appends
// exactly one credit entry valued at the booking's snapshotted price.
//
// The status transition is a conditional update keyed on status = pending,
// so two concurrent completions serialize at the store and only one writes
// a credit; the loser gets ErrConflict. The unique index on
// ledger_entries.booking_id is the second guard: even a retry from another
// process cannot record a duplicate credit.
func (s *ReconciliationService) CompleteBooking(accountID, bookingID uuid.UUID) (*models.Booking, *models.LedgerEntry, error) {
	now := time.Now()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, storeError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var booking models.Booking
	if err := tx.Where("account_id = ? AND id = ?", accountID, bookingID).
		First(&booking).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storeError(err)
	}

	result := tx.Model(&models.Booking{}).
		Where("account_id = ? AND id = ? AND status = ?", accountID, bookingID, models.BookingPending).
		Updates(map[string]interface{}{
			"status":       models.BookingCompleted,
			"completed_at": now,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, nil, storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		// already completed or cancelled
		tx.Rollback()
		return nil, nil, ErrConflict
	}

	entry := models.LedgerEntry{
		AccountID:   accountID,
		Reference:   "TXN-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		Description: fmt.Sprintf("%s - %s", booking.ServiceName, booking.ClientName),
		Value:       booking.Price,
		Kind:        models.EntryCredit,
		Date:        now,
		BookingID:   &booking.ID,
	}

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, storeError(err)
	}

	booking.Status = models.BookingCompleted
	booking.CompletedAt = &now

	s.metrics.Invalidate(accountID)
	return &booking, &entry, nil
}
