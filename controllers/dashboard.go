package controllers

import (
	"net/http"
	"time"

	"vivv-backend/services"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the current month figures plus today's
// pending booking load. Served from a short TTL cache that every booking
// or ledger write invalidates.
func GetDashboardOverview(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	overview, err := metricsSvc.GetOverview(accountUUID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetFinancialReport returns revenue, expenses and profit for an arbitrary
// date range.
func GetFinancialReport(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	now := time.Now()
	period := services.CurrentMonth(now)

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		period.From = from
	}
	if toParam := c.Query("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		period.To = to.AddDate(0, 0, 1).Add(-time.Second)
	}

	revenue, err := metricsSvc.Revenue(accountUUID, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	expenses, err := metricsSvc.Expenses(accountUUID, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":     period.From,
		"to":       period.To,
		"revenue":  revenue,
		"expenses": expenses,
		"profit":   revenue.Sub(expenses),
	})
}
