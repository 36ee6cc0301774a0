package main

import (
	"fmt"
	"log"
	"os"

	"vivv-backend/config"
	"vivv-backend/controllers"
	"vivv-backend/models"
	"vivv-backend/routes"
	"vivv-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Account{},
		&models.Client{},
		&models.Service{},
		&models.Booking{},
		&models.LedgerEntry{},
	)

	controllers.Init(config.DB)
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
