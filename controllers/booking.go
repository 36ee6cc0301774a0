package controllers

import (
	"net/http"
	"time"

	"vivv-backend/services"
	"vivv-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	ClientID  uuid.UUID `json:"clientId" binding:"required"`
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Date      string    `json:"date" binding:"required"`      // "2006-01-02"
	StartTime string    `json:"startTime" binding:"required"` // "15:04"
}

// CreateBooking schedules a new pending appointment
func CreateBooking(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	booking, err := bookingSvc.Create(accountUUID, services.CreateBookingInput{
		ClientID:  input.ClientID,
		ServiceID: input.ServiceID,
		Date:      date,
		StartTime: input.StartTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists bookings, optionally filtered by status and day,
// ordered by date and start time
func GetBookings(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	filter := services.BookingFilter{Status: c.Query("status")}

	if dateParam := c.Query("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	bookings, err := bookingSvc.List(accountUUID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := bookingSvc.Get(accountUUID, bookingUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CompleteBooking transitions a pending booking to completed and records
// its revenue in the ledger as one unit
func CompleteBooking(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, entry, err := bookingSvc.Complete(accountUUID, bookingUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking":     booking,
		"ledgerEntry": entry,
	})
}

// CancelBooking terminally removes a pending booking
func CancelBooking(c *gin.Context) {
	accountUUID, ok := currentAccountID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	if err := bookingSvc.Cancel(accountUUID, bookingUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
