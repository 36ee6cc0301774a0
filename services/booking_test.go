package services

import (
	"testing"
	"time"

	"vivv-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_SnapshotsPriceAndNames(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	booking, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID:  client.ID,
		ServiceID: service.ID,
		Date:      time.Date(2026, time.June, 10, 9, 30, 0, 0, time.UTC),
		StartTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, "Ana", booking.ClientName)
	assert.Equal(t, "Haircut", booking.ServiceName)
	assert.True(t, booking.Price.Equal(service.Price))
	assert.Equal(t, 0, booking.Date.Hour(), "date should be normalized to the start of the day")

	// Repricing the service later must not touch the snapshot
	require.NoError(t, env.db.Model(&models.Service{}).
		Where("id = ?", service.ID).Update("price", "75.00").Error)

	var fresh models.Booking
	require.NoError(t, env.db.First(&fresh, "id = ?", booking.ID).Error)
	assert.True(t, fresh.Price.Equal(service.Price))
}

func TestCreateBooking_MissingServiceFailsValidation(t *testing.T) {
	// A missing service must be a hard validation failure, never a free
	// booking with a zero default price.
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")

	_, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID:  client.ID,
		ServiceID: uuid.New(),
		Date:      time.Now(),
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, env.db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateBooking_MissingClientFailsValidation(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	_, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID:  uuid.New(),
		ServiceID: service.ID,
		Date:      time.Now(),
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_OtherTenantRecordsInvisible(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	intruder := uuid.New()

	client := seedClient(t, env.db, owner, "Ana")
	service := seedService(t, env.db, owner, "Haircut", "50.00")

	_, err := env.bookings.Create(intruder, CreateBookingInput{
		ClientID:  client.ID,
		ServiceID: service.ID,
		Date:      time.Now(),
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_RejectsBadStartTime(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	for _, bad := range []string{"25:00", "9h30", "", "14:60"} {
		_, err := env.bookings.Create(accountID, CreateBookingInput{
			ClientID:  client.ID,
			ServiceID: service.ID,
			Date:      time.Now(),
			StartTime: bad,
		})
		assert.ErrorIs(t, err, ErrValidation, "start time %q should be rejected", bad)
	}
}

func TestListBookings_OrderedByDateThenTime(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	dayOne := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	dayTwo := dayOne.AddDate(0, 0, 1)

	// Insert out of order on purpose
	for _, slot := range []struct {
		date time.Time
		at   string
	}{
		{dayTwo, "09:00"},
		{dayOne, "16:30"},
		{dayOne, "08:00"},
		{dayTwo, "18:00"},
	} {
		_, err := env.bookings.Create(accountID, CreateBookingInput{
			ClientID:  client.ID,
			ServiceID: service.ID,
			Date:      slot.date,
			StartTime: slot.at,
		})
		require.NoError(t, err)
	}

	bookings, err := env.bookings.List(accountID, BookingFilter{})
	require.NoError(t, err)
	require.Len(t, bookings, 4)

	assert.Equal(t, "08:00", bookings[0].StartTime)
	assert.Equal(t, "16:30", bookings[1].StartTime)
	assert.Equal(t, "09:00", bookings[2].StartTime)
	assert.Equal(t, "18:00", bookings[3].StartTime)
}

func TestListBookings_FilterByStatusAndDate(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	dayOne := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	dayTwo := dayOne.AddDate(0, 0, 1)

	first, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID: client.ID, ServiceID: service.ID, Date: dayOne, StartTime: "10:00",
	})
	require.NoError(t, err)
	_, err = env.bookings.Create(accountID, CreateBookingInput{
		ClientID: client.ID, ServiceID: service.ID, Date: dayTwo, StartTime: "10:00",
	})
	require.NoError(t, err)

	_, _, err = env.bookings.Complete(accountID, first.ID)
	require.NoError(t, err)

	pending, err := env.bookings.List(accountID, BookingFilter{Status: models.BookingPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	onDayOne, err := env.bookings.List(accountID, BookingFilter{Date: &dayOne})
	require.NoError(t, err)
	assert.Len(t, onDayOne, 1)
	assert.Equal(t, models.BookingCompleted, onDayOne[0].Status)
}

func TestCancelBooking_PendingIsRemovedWithoutLedgerEffect(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	booking := seedPendingBooking(t, env, accountID, "Ana", "Haircut", "50.00", time.Now(), "14:00")

	require.NoError(t, env.bookings.Cancel(accountID, booking.ID))

	bookings, err := env.bookings.List(accountID, BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings, "a cancelled booking disappears from listings")

	var entries int64
	require.NoError(t, env.db.Model(&models.LedgerEntry{}).Count(&entries).Error)
	assert.EqualValues(t, 0, entries)
}

func TestCancelBooking_CompletedConflictsAndNothingChanges(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	booking := seedPendingBooking(t, env, accountID, "Ana", "Haircut", "50.00", time.Now(), "14:00")

	_, _, err := env.bookings.Complete(accountID, booking.ID)
	require.NoError(t, err)

	err = env.bookings.Cancel(accountID, booking.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var fresh models.Booking
	require.NoError(t, env.db.First(&fresh, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingCompleted, fresh.Status)

	var entries int64
	require.NoError(t, env.db.Model(&models.LedgerEntry{}).
		Where("booking_id = ?", booking.ID).Count(&entries).Error)
	assert.EqualValues(t, 1, entries, "the credit stays untouched")
}

func TestCancelBooking_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.bookings.Cancel(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
