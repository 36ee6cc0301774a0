package services

import (
	"time"

	"vivv-backend/models"
)

// AccessDecision is the outcome of a subscription check.
type AccessDecision struct {
	Allowed bool
	Reason  error // ErrTrialExpired or ErrNotProvisioned when denied
}

// EvaluateAccess decides whether an account may use the system right now.
// Pure function of the account and the clock; callers must re-evaluate on
// every request because the paid flag can flip asynchronously when an
// external payment confirmation lands.
func EvaluateAccess(account *models.Account, now time.Time) AccessDecision {
	if account.Paid {
		return AccessDecision{Allowed: true}
	}
	if account.TrialExpiresAt == nil {
		return AccessDecision{Allowed: false, Reason: ErrNotProvisioned}
	}
	if now.Before(*account.TrialExpiresAt) {
		return AccessDecision{Allowed: true}
	}
	return AccessDecision{Allowed: false, Reason: ErrTrialExpired}
}
