package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"vivv-backend/config"
	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"businessName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func trialDays() int {
	if env := os.Getenv("TRIAL_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil && d > 0 {
			return d
		}
	}
	return 7
}

// Register creates a new account with a fresh trial window
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email already exists
	var existingAccount models.Account
	result := config.DB.Where("email = ?", email).First(&existingAccount)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	trialExpiry := time.Now().AddDate(0, 0, trialDays())

	newAccount := models.Account{
		Email:          email,
		Phone:          input.Phone,
		Password:       input.Password, // Will be hashed in BeforeCreate hook
		BusinessName:   input.BusinessName,
		Paid:           false,
		TrialExpiresAt: &trialExpiry,
		IsActive:       true,
	}

	if err := config.DB.Create(&newAccount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newAccount.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"account": gin.H{
			"id":             newAccount.ID,
			"email":          newAccount.Email,
			"businessName":   newAccount.BusinessName,
			"trialExpiresAt": newAccount.TrialExpiresAt,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var account models.Account
	result := config.DB.Where("email = ?", email).First(&account)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(account.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&account).Update("last_login", &now)

	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"account": gin.H{
			"id":           account.ID,
			"email":        account.Email,
			"businessName": account.BusinessName,
			"paid":         account.Paid,
		},
	})
}

func Me(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := config.DB.First(&account, "id = ?", accountUUID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": gin.H{
			"id":             account.ID,
			"email":          account.Email,
			"businessName":   account.BusinessName,
			"paid":           account.Paid,
			"trialExpiresAt": account.TrialExpiresAt,
		},
	})
}
