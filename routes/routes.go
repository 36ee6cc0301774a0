package routes

import (
	"os"
	"strings"

	"vivv-backend/config"
	"vivv-backend/controllers"
	"vivv-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Payment processor webhook, authenticated by shared secret
	r.POST("/billing/confirm", controllers.ConfirmPayment)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	api.Use(controllers.SubscriptionGuard())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.POST("/:id/complete", controllers.CompleteBooking)
			bookings.DELETE("/:id", controllers.CancelBooking)
		}

		// Cash register routes (append-only)
		ledger := api.Group("/ledger")
		{
			ledger.POST("", controllers.CreateLedgerEntry)
			ledger.GET("", controllers.GetLedgerEntries)
		}

		// Dashboard and reports
		api.GET("/dashboard", controllers.GetDashboardOverview)
		api.GET("/reports", controllers.GetFinancialReport)

		// Business advisor
		advisor := api.Group("/advisor")
		{
			advisor.POST("", controllers.GetAdvice)
			advisor.GET("/context", controllers.GetAdvisoryContext)
		}
	}

	return r
}
