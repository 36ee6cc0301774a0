package controllers

import (
	"errors"
	"net/http"
	"time"

	"vivv-backend/config"
	"vivv-backend/models"
	"vivv-backend/services"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubscriptionGuard re-evaluates the paid/trial rule on every request. The
// decision is never cached because the paid flag can flip asynchronously
// when a payment confirmation arrives.
func SubscriptionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountUUID, ok := currentAccountID(c)
		if !ok {
			return
		}

		var account models.Account
		if err := config.DB.First(&account, "id = ?", accountUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// hard deny, distinct from a trial expiry
				utils.RespondWithError(c, http.StatusUnauthorized, "Account not found")
			} else {
				utils.RespondWithError(c, http.StatusServiceUnavailable, "Temporary storage issue, please retry")
			}
			return
		}

		decision := services.EvaluateAccess(&account, time.Now())
		if !decision.Allowed {
			if errors.Is(decision.Reason, services.ErrTrialExpired) {
				utils.RespondWithError(c, http.StatusForbidden, "Trial expired. Upgrade to keep using Vivv.")
			} else {
				utils.RespondWithError(c, http.StatusForbidden, "Account not provisioned")
			}
			return
		}

		c.Next()
	}
}
