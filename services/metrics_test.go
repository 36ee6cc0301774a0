package services

import (
	"sync"
	"testing"
	"time"

	"vivv-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func manualEntry(t *testing.T, env *testEnv, accountID uuid.UUID, kind, value string, date time.Time) {
	t.Helper()

	_, err := env.ledger.Record(accountID, ManualEntryInput{
		Description: "test entry",
		Value:       decimal.RequireFromString(value),
		Kind:        kind,
		Date:        &date,
	})
	require.NoError(t, err)
}

func TestMetrics_EmptyStoresReturnZeroes(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	overview, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)

	assert.True(t, overview.Revenue.IsZero())
	assert.True(t, overview.Expenses.IsZero())
	assert.True(t, overview.Profit.IsZero())
	assert.EqualValues(t, 0, overview.TodaysLoad)
	assert.EqualValues(t, 0, overview.ClientCount)
}

func TestMetrics_ProfitIsRevenueMinusExpenses(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	manualEntry(t, env, accountID, models.EntryCredit, "120.50", now)
	manualEntry(t, env, accountID, models.EntryCredit, "79.50", now)
	manualEntry(t, env, accountID, models.EntryDebit, "30.00", now)

	period := Period{From: now.Add(-time.Hour), To: now.Add(time.Hour)}

	revenue, err := env.metrics.Revenue(accountID, period)
	require.NoError(t, err)
	expenses, err := env.metrics.Expenses(accountID, period)
	require.NoError(t, err)
	profit, err := env.metrics.Profit(accountID, period)
	require.NoError(t, err)

	assert.True(t, revenue.Equal(decimal.RequireFromString("200.00")), "revenue = %s", revenue)
	assert.True(t, expenses.Equal(decimal.RequireFromString("30.00")), "expenses = %s", expenses)
	assert.True(t, profit.Equal(revenue.Sub(expenses)))
}

func TestMetrics_EmptyPeriodIsZero(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	manualEntry(t, env, accountID, models.EntryCredit, "100.00", now)

	// From after To: no dates can fall inside
	period := Period{From: now.Add(time.Hour), To: now.Add(-time.Hour)}

	profit, err := env.metrics.Profit(accountID, period)
	require.NoError(t, err)
	assert.True(t, profit.IsZero())
}

func TestMetrics_PeriodExcludesOutsideEntries(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	manualEntry(t, env, accountID, models.EntryCredit, "100.00", now)
	manualEntry(t, env, accountID, models.EntryCredit, "999.00", now.AddDate(0, -2, 0))

	period := Period{From: now.Add(-time.Hour), To: now.Add(time.Hour)}

	revenue, err := env.metrics.Revenue(accountID, period)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("100.00")))
}

func TestMetrics_TenantsAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	first := uuid.New()
	second := uuid.New()
	now := time.Now()

	manualEntry(t, env, first, models.EntryCredit, "100.00", now)

	period := Period{From: now.Add(-time.Hour), To: now.Add(time.Hour)}
	revenue, err := env.metrics.Revenue(second, period)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
}

func TestMetrics_TodaysLoadCountsPendingOnly(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	var todays []*models.Booking
	for _, at := range []string{"09:00", "11:00", "15:00"} {
		booking, err := env.bookings.Create(accountID, CreateBookingInput{
			ClientID: client.ID, ServiceID: service.ID, Date: now, StartTime: at,
		})
		require.NoError(t, err)
		todays = append(todays, booking)
	}
	// Tomorrow's booking never counts toward today's load
	_, err := env.bookings.Create(accountID, CreateBookingInput{
		ClientID: client.ID, ServiceID: service.ID, Date: now.AddDate(0, 0, 1), StartTime: "10:00",
	})
	require.NoError(t, err)

	load, err := env.metrics.TodaysLoad(accountID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, load)

	// Completing one drops it out of the pending load
	_, _, err = env.bookings.Complete(accountID, todays[0].ID)
	require.NoError(t, err)

	load, err = env.metrics.TodaysLoad(accountID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, load)

	// Cancelling another does too
	require.NoError(t, env.bookings.Cancel(accountID, todays[1].ID))

	load, err = env.metrics.TodaysLoad(accountID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, load)
}

func TestMetrics_OverviewCacheInvalidatedByWrites(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	first, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)
	assert.True(t, first.Revenue.IsZero())

	// Within the TTL a plain read would be served from cache; a ledger
	// write must drop it immediately.
	manualEntry(t, env, accountID, models.EntryCredit, "40.00", now)

	second, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)
	assert.True(t, second.Revenue.Equal(decimal.RequireFromString("40.00")),
		"overview after a write must reflect the new entry, got %s", second.Revenue)
}

func TestMetrics_OverviewServedFromCacheUntilTTL(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	_, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)

	// Bypass the service on purpose so the cache is not invalidated
	entry := models.LedgerEntry{
		AccountID:   accountID,
		Reference:   "TXN-TEST",
		Description: "direct insert",
		Value:       decimal.RequireFromString("10.00"),
		Kind:        models.EntryCredit,
		Date:        now,
	}
	require.NoError(t, env.db.Create(&entry).Error)

	cached, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)
	assert.True(t, cached.Revenue.IsZero(), "within TTL the cached overview is served")

	// After the TTL the fresh figures come back
	later, err := env.metrics.GetOverview(accountID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, later.Revenue.Equal(decimal.RequireFromString("10.00")))
}

func TestMetrics_TodaysLoadMatchesAcrossZones(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()

	client := seedClient(t, env.db, accountID, "Ana")
	service := seedService(t, env.db, accountID, "Haircut", "50.00")

	// Booking dated via the wire format, which parses as UTC midnight
	day, err := time.Parse("2006-01-02", "2026-06-10")
	require.NoError(t, err)
	_, err = env.bookings.Create(accountID, CreateBookingInput{
		ClientID: client.ID, ServiceID: service.ID, Date: day, StartTime: "14:00",
	})
	require.NoError(t, err)

	// Host clock sits in UTC-3 at noon of the same calendar day
	saoPaulo := time.FixedZone("UTC-3", -3*3600)
	noonLocal := time.Date(2026, time.June, 10, 12, 0, 0, 0, saoPaulo)

	load, err := env.metrics.TodaysLoad(accountID, noonLocal)
	require.NoError(t, err)
	assert.EqualValues(t, 1, load, "day equality must hold regardless of the clock's zone")
}

func TestMetrics_WriteDuringComputeIsNotMaskedByCache(t *testing.T) {
	env := newTestEnv(t)
	accountID := uuid.New()
	now := time.Now()

	// Land a ledger write after the overview read its first figure but
	// before it finished: the half-computed result must not be cached.
	var once sync.Once
	err := env.db.Callback().Query().After("gorm:query").Register("midread_write", func(tx *gorm.DB) {
		once.Do(func() {
			entry := models.LedgerEntry{
				AccountID:   accountID,
				Reference:   "TXN-MIDREAD",
				Description: "landed mid-read",
				Value:       decimal.RequireFromString("25.00"),
				Kind:        models.EntryCredit,
				Date:        now,
			}
			require.NoError(t, env.db.Create(&entry).Error)
			env.metrics.Invalidate(accountID)
		})
	})
	require.NoError(t, err)

	_, err = env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)

	// Still inside the TTL: a stale overview cached by the first read
	// would report zero revenue here
	fresh, err := env.metrics.GetOverview(accountID, now)
	require.NoError(t, err)
	assert.True(t, fresh.Revenue.Equal(decimal.RequireFromString("25.00")),
		"overview computed alongside a write must not be served from cache, got %s", fresh.Revenue)
}
