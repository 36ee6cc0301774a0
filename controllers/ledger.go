package controllers

import (
	"net/http"
	"time"

	"vivv-backend/services"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryInput defines the expected JSON structure for a manual
// cash register entry
type CreateLedgerEntryInput struct {
	Description string          `json:"description" binding:"required"`
	Value       decimal.Decimal `json:"value"`
	Kind        string          `json:"kind" binding:"required,oneof=credit debit"`
	Date        *time.Time      `json:"date"`
}

// CreateLedgerEntry appends a manual credit or debit. Entries are
// append-only; there are no update or delete endpoints.
func CreateLedgerEntry(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateLedgerEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ledgerSvc.Record(accountUUID, services.ManualEntryInput{
		Description: input.Description,
		Value:       input.Value,
		Kind:        input.Kind,
		Date:        input.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetLedgerEntries lists entries, newest first, optionally filtered by
// kind and date range
func GetLedgerEntries(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	filter := services.LedgerFilter{Kind: c.Query("kind")}

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &from
	}
	if toParam := c.Query("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		// include the whole day
		to = to.AddDate(0, 0, 1).Add(-time.Second)
		filter.To = &to
	}

	entries, err := ledgerSvc.List(accountUUID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
