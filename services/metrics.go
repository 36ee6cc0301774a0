package services

import (
	"sync"
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period is a closed date range for money aggregation.
type Period struct {
	From time.Time
	To   time.Time
}

// CurrentMonth returns the period from the first of the month through now.
func CurrentMonth(now time.Time) Period {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{From: firstOfMonth, To: now}
}

// Overview holds the derived dashboard figures for one account.
type Overview struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Profit      decimal.Decimal `json:"profit"`
	TodaysLoad  int64           `json:"todaysLoad"`
	ClientCount int64           `json:"clientCount"`
}

type cachedOverview struct {
	overview  Overview
	expiresAt time.Time
}

// MetricsService computes read-only figures from the ledger and booking
// stores. The stores stay authoritative: the overview cache only smooths
// dashboard reads and is dropped immediately after any write.
type MetricsService struct {
	db  *gorm.DB
	ttl time.Duration

	mu    sync.Mutex
	cache map[uuid.UUID]cachedOverview
	// gen counts writes per account; a read only caches its result when no
	// write landed while it was computing.
	gen map[uuid.UUID]uint64
}

func NewMetricsService(db *gorm.DB, ttl time.Duration) *MetricsService {
	return &MetricsService{
		db:    db,
		ttl:   ttl,
		cache: make(map[uuid.UUID]cachedOverview),
		gen:   make(map[uuid.UUID]uint64),
	}
}

// Revenue sums credit entries with dates inside the period.
func (s *MetricsService) Revenue(accountID uuid.UUID, p Period) (decimal.Decimal, error) {
	return s.sumByKind(accountID, models.EntryCredit, p)
}

// Expenses sums debit entries with dates inside the period.
func (s *MetricsService) Expenses(accountID uuid.UUID, p Period) (decimal.Decimal, error) {
	return s.sumByKind(accountID, models.EntryDebit, p)
}

// Profit is revenue minus expenses for the period.
func (s *MetricsService) Profit(accountID uuid.UUID, p Period) (decimal.Decimal, error) {
	revenue, err := s.Revenue(accountID, p)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.Expenses(accountID, p)
	if err != nil {
		return decimal.Zero, err
	}
	return revenue.Sub(expenses), nil
}

// TodaysLoad counts pending bookings scheduled for today. Completed and
// cancelled bookings are excluded.
func (s *MetricsService) TodaysLoad(accountID uuid.UUID, now time.Time) (int64, error) {
	today := utils.BeginningOfDay(now)
	var count int64
	if err := s.db.Model(&models.Booking{}).
		Where("account_id = ? AND status = ? AND date = ?", accountID, models.BookingPending, today).
		Count(&count).Error; err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

// ClientCount counts active clients for the account.
func (s *MetricsService) ClientCount(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Client{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

// GetOverview returns the dashboard figures for the current month, served
// from the short TTL cache when fresh.
func (s *MetricsService) GetOverview(accountID uuid.UUID, now time.Time) (Overview, error) {
	s.mu.Lock()
	if cached, ok := s.cache[accountID]; ok && now.Before(cached.expiresAt) {
		s.mu.Unlock()
		return cached.overview, nil
	}
	gen := s.gen[accountID]
	s.mu.Unlock()

	period := CurrentMonth(now)

	revenue, err := s.Revenue(accountID, period)
	if err != nil {
		return Overview{}, err
	}
	expenses, err := s.Expenses(accountID, period)
	if err != nil {
		return Overview{}, err
	}
	load, err := s.TodaysLoad(accountID, now)
	if err != nil {
		return Overview{}, err
	}
	clients, err := s.ClientCount(accountID)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Revenue:     revenue,
		Expenses:    expenses,
		Profit:      revenue.Sub(expenses),
		TodaysLoad:  load,
		ClientCount: clients,
	}

	s.mu.Lock()
	// Skip the store if a write invalidated this account mid-compute;
	// caching now would pin pre-write figures for a full TTL.
	if s.gen[accountID] == gen {
		s.cache[accountID] = cachedOverview{overview: overview, expiresAt: now.Add(s.ttl)}
	}
	s.mu.Unlock()

	return overview, nil
}

// Invalidate drops the cached overview for the account. Called after every
// booking or ledger write.
func (s *MetricsService) Invalidate(accountID uuid.UUID) {
	s.mu.Lock()
	delete(s.cache, accountID)
	s.gen[accountID]++
	s.mu.Unlock()
}

func (s *MetricsService) sumByKind(accountID uuid.UUID, kind string, p Period) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.LedgerEntry{}).
		Where("account_id = ? AND kind = ? AND date BETWEEN ? AND ?", accountID, kind, p.From, p.To).
		Select("COALESCE(SUM(value), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, storeError(err)
	}
	return result.Total, nil
}
