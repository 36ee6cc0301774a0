package controllers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"vivv-backend/config"
	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentConfirmationInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmPayment is the webhook the payment processor calls once a
// subscription payment clears. It only flips the opaque paid flag; access
// checks pick the change up on the next request.
func ConfirmPayment(c *gin.Context) {
	secret := os.Getenv("BILLING_WEBHOOK_SECRET")
	if secret == "" || c.GetHeader("X-Billing-Secret") != secret {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid webhook secret")
		return
	}

	var input PaymentConfirmationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var account models.Account
	if err := config.DB.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&account).Update("paid", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmed"})
}
