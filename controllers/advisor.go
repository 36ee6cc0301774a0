package controllers

import (
	"net/http"
	"time"

	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdviceInput struct {
	Question string `json:"question"`
}

// GetAdvice forwards the account's business snapshot to the external
// advice endpoint and relays the opaque response text. A failure here is
// a 502 and nothing else; it cannot affect bookings or the ledger.
func GetAdvice(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input AdviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	advice, err := advisorSvc.Advise(c.Request.Context(), accountUUID, input.Question)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

// GetAdvisoryContext exposes the read-only snapshot shared with the
// advisor, for the UI to display alongside the chat widget.
func GetAdvisoryContext(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	context, err := advisorSvc.BusinessContext(accountUUID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, context)
}
