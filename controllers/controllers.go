package controllers

import (
	"errors"
	"net/http"
	"time"

	"vivv-backend/services"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	metricsSvc *services.MetricsService
	bookingSvc *services.BookingService
	ledgerSvc  *services.LedgerService
	advisorSvc *services.AdvisorService
)

// Init wires the service layer. Must be called once after the database
// connection is up.
func Init(db *gorm.DB) {
	metricsSvc = services.NewMetricsService(db, 30*time.Second)
	reconciliation := services.NewReconciliationService(db, metricsSvc)
	bookingSvc = services.NewBookingService(db, reconciliation, metricsSvc)
	ledgerSvc = services.NewLedgerService(db, metricsSvc)
	advisorSvc = services.NewAdvisorService(metricsSvc)
}

// currentAccountID pulls the authenticated tenant id out of the gin
// context. Writes the error response itself on failure.
func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get("accountId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in context")
		return uuid.Nil, false
	}
	accountUUID, err := uuid.Parse(accountID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID format")
		return uuid.Nil, false
	}
	return accountUUID, true
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Booking is no longer pending")
	case errors.Is(err, services.ErrStoreUnavailable):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Temporary storage issue, please retry")
	case errors.Is(err, services.ErrAdvisorUnavailable):
		utils.RespondWithError(c, http.StatusBadGateway, "Advisor is unavailable right now")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
