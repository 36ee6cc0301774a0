package services

import (
	"errors"
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput carries the fields needed to schedule an appointment.
type CreateBookingInput struct {
	ClientID  uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	StartTime string // "15:04"
}

// BookingFilter narrows listing by status and/or day.
type BookingFilter struct {
	Status string
	Date   *time.Time
}

// BookingService owns the appointment lifecycle:
//
//	pending --complete--> completed   (terminal, writes one ledger credit)
//	pending --cancel-->   cancelled   (terminal, no ledger effect)
type BookingService struct {
	db             *gorm.DB
	reconciliation *ReconciliationService
	metrics        *MetricsService
}

func NewBookingService(db *gorm.DB, reconciliation *ReconciliationService, metrics *MetricsService) *BookingService {
	return &BookingService{
		db:             db,
		reconciliation: reconciliation,
		metrics:        metrics,
	}
}

// Create validates the referenced client and service, snapshots their names
// and the service price into the new booking, and stores it as pending. A
// missing service is a hard validation failure - the price is never
// defaulted to zero.
func (s *BookingService) Create(accountID uuid.UUID, input CreateBookingInput) (*models.Booking, error) {
	if !utils.ValidateClockTime(input.StartTime) {
		return nil, newValidationError("start time must be in HH:MM format")
	}

	var client models.Client
	if err := s.db.Where("account_id = ? AND id = ?", accountID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("client not found")
		}
		return nil, storeError(err)
	}

	var service models.Service
	if err := s.db.Where("account_id = ? AND id = ?", accountID, input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("service not found, booking price cannot be resolved")
		}
		return nil, storeError(err)
	}
	if service.Price.IsNegative() {
		return nil, newValidationError("service price must not be negative")
	}

	booking := models.Booking{
		AccountID:   accountID,
		ClientID:    client.ID,
		ServiceID:   service.ID,
		ClientName:  client.Name,
		ServiceName: service.Name,
		Price:       service.Price,
		Date:        utils.BeginningOfDay(input.Date),
		StartTime:   input.StartTime,
		Status:      models.BookingPending,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, storeError(err)
	}

	s.metrics.Invalidate(accountID)
	return &booking, nil
}

// List returns the account's bookings matching the filter, ordered by
// (date, start time) ascending so the upcoming view reads top-down.
func (s *BookingService) List(accountID uuid.UUID, filter BookingFilter) ([]models.Booking, error) {
	query := s.db.Where("account_id = ?", accountID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", utils.BeginningOfDay(*filter.Date))
	}

	var bookings []models.Booking
	if err := query.Order("date ASC, start_time ASC").Find(&bookings).Error; err != nil {
		return nil, storeError(err)
	}
	return bookings, nil
}

// Get returns a single booking for the account.
func (s *BookingService) Get(accountID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Where("account_id = ? AND id = ?", accountID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return &booking, nil
}

// Cancel terminally removes a pending booking. The status guard in the
// UPDATE serializes racing cancels/completes at the store, so a booking
// that was already completed comes back as ErrConflict and keeps its
// ledger entry untouched.
func (s *BookingService) Cancel(accountID, bookingID uuid.UUID) error {
	now := time.Now()

	tx := s.db.Begin()
	if tx.Error != nil {
		return storeError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Booking{}).
		Where("account_id = ? AND id = ? AND status = ?", accountID, bookingID, models.BookingPending).
		Updates(map[string]interface{}{
			"status":       models.BookingCancelled,
			"cancelled_at": now,
		})
	if result.Error != nil {
		tx.Rollback()
		return storeError(result.Error)
	}

	if result.RowsAffected == 0 {
		tx.Rollback()
		var existing models.Booking
		err := s.db.Where("account_id = ? AND id = ?", accountID, bookingID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return storeError(err)
		}
		return ErrConflict
	}

	if err := tx.Where("account_id = ? AND id = ?", accountID, bookingID).
		Delete(&models.Booking{}).Error; err != nil {
		tx.Rollback()
		return storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return storeError(err)
	}

	s.metrics.Invalidate(accountID)
	return nil
}

// Complete marks a pending booking completed and records its revenue as a
// single logical unit. Delegates to the reconciliation service.
func (s *BookingService) Complete(accountID, bookingID uuid.UUID) (*models.Booking, *models.LedgerEntry, error) {
	return s.reconciliation.CompleteBooking(accountID, bookingID)
}
