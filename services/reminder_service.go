// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"vivv-backend/models"
	"vivv-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends clients a message the day before their pending
// booking. It runs entirely outside the request path; send failures are
// logged and never propagated.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Booking reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily booking reminder processing...")

	var accounts []models.Account
	if err := s.db.Find(&accounts, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return
	}

	for _, account := range accounts {
		s.ProcessAccountReminders(account)
	}

	log.Println("Daily booking reminder processing completed")
}

func (s *ReminderService) ProcessAccountReminders(account models.Account) {
	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var bookings []models.Booking
	if err := s.db.Where("account_id = ? AND status = ? AND date = ?",
		account.ID, models.BookingPending, tomorrow).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		log.Printf("Account %s: Failed to fetch tomorrow's bookings: %v", account.ID, err)
		return
	}

	for _, booking := range bookings {
		s.sendReminder(account, booking)
	}
}

func (s *ReminderService) sendReminder(account models.Account, booking models.Booking) {
	phone, err := s.clientPhone(account.ID, booking.ClientID)
	if err != nil {
		log.Printf("Account %s: No phone for booking %s: %v", account.ID, booking.ID, err)
		return
	}

	message := fmt.Sprintf("Hi %s, a reminder of your %s appointment tomorrow at %s. See you there! - %s",
		booking.ClientName, booking.ServiceName, booking.StartTime, account.BusinessName)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	} else {
		to = phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", phone)
	}
}

func (s *ReminderService) clientPhone(accountID, clientID uuid.UUID) (string, error) {
	var client models.Client
	if err := s.db.Where("account_id = ? AND id = ?", accountID, clientID).
		First(&client).Error; err != nil {
		return "", err
	}
	if client.Phone == "" {
		return "", fmt.Errorf("client %s has no phone number", clientID)
	}
	return client.Phone, nil
}
