package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvisoryContext is the read-only business snapshot shared with the
// external text-generation endpoint. The response text is opaque and never
// parsed; advisor failures can never touch the booking or ledger path.
type AdvisoryContext struct {
	ClientCount int64           `json:"clientCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Profit      decimal.Decimal `json:"profit"`
}

// RetryPolicy defines exponential backoff parameters.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NextDelay returns delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// AdvisorService asks an external generative endpoint for textual business
// advice, grounded on the account's current month figures.
type AdvisorService struct {
	metrics *MetricsService
	client  *http.Client
	url     string
	apiKey  string
	retry   RetryPolicy
}

func NewAdvisorService(metrics *MetricsService) *AdvisorService {
	return &AdvisorService{
		metrics: metrics,
		client:  &http.Client{Timeout: 15 * time.Second},
		url:     os.Getenv("ADVISOR_URL"),
		apiKey:  os.Getenv("ADVISOR_API_KEY"),
		retry: RetryPolicy{
			MaxRetries:    3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2,
		},
	}
}

// BusinessContext builds the advisory snapshot for the current month.
func (s *AdvisorService) BusinessContext(accountID uuid.UUID, now time.Time) (AdvisoryContext, error) {
	period := CurrentMonth(now)

	revenue, err := s.metrics.Revenue(accountID, period)
	if err != nil {
		return AdvisoryContext{}, err
	}
	expenses, err := s.metrics.Expenses(accountID, period)
	if err != nil {
		return AdvisoryContext{}, err
	}
	clients, err := s.metrics.ClientCount(accountID)
	if err != nil {
		return AdvisoryContext{}, err
	}

	return AdvisoryContext{
		ClientCount: clients,
		Revenue:     revenue,
		Expenses:    expenses,
		Profit:      revenue.Sub(expenses),
	}, nil
}

// Advise posts the business context and an optional question, retrying
// transient failures with backoff. Returns the opaque advice text.
func (s *AdvisorService) Advise(ctx context.Context, accountID uuid.UUID, question string) (string, error) {
	if s.url == "" {
		return "", fmt.Errorf("%w: ADVISOR_URL not set", ErrAdvisorUnavailable)
	}

	business, err := s.BusinessContext(accountID, time.Now())
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"context":  business,
		"question": question,
	})
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= s.retry.MaxRetries; attempt++ {
		advice, retryable, err := s.post(ctx, payload)
		if err == nil {
			return advice, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if attempt < s.retry.MaxRetries {
			delay := s.retry.NextDelay(attempt)
			log.Printf("Advisor request failed (attempt %d/%d), retrying in %v: %v",
				attempt, s.retry.MaxRetries, delay, err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, ctx.Err())
			}
		}
	}

	return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, lastErr)
}

func (s *AdvisorService) post(ctx context.Context, payload []byte) (advice string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", true, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return string(body), false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	default:
		return "", false, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}
}
