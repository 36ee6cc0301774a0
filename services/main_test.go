package services

import (
	"testing"
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Client{},
		&models.Service{},
		&models.Booking{},
		&models.LedgerEntry{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

type testEnv struct {
	db       *gorm.DB
	metrics  *MetricsService
	recon    *ReconciliationService
	bookings *BookingService
	ledger   *LedgerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	metrics := NewMetricsService(db, 30*time.Second)
	recon := NewReconciliationService(db, metrics)

	return &testEnv{
		db:       db,
		metrics:  metrics,
		recon:    recon,
		bookings: NewBookingService(db, recon, metrics),
		ledger:   NewLedgerService(db, metrics),
	}
}

func seedClient(t *testing.T, db *gorm.DB, accountID uuid.UUID, name string) models.Client {
	t.Helper()

	client := models.Client{
		AccountID: accountID,
		Name:      name,
		Phone:     "+5511" + utils.GenerateRandomString(6),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedService(t *testing.T, db *gorm.DB, accountID uuid.UUID, name string, price string) models.Service {
	t.Helper()

	service := models.Service{
		AccountID: accountID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Duration:  30,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func seedPendingBooking(t *testing.T, env *testEnv, accountID uuid.UUID, clientName, serviceName, price string, date time.Time, startTime string) *models.Booking {
	t.Helper()

	client := seedClient(t, env.db, accountID, clientName)
	service := seedService(t, env.db, accountID, serviceName, price)

	booking, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID:  client.ID,
		ServiceID: service.ID,
		Date:      date,
		StartTime: startTime,
	})
	require.NoError(t, err)
	return booking
}
