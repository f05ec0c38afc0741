package routes

import (
	"net/http"

	"KuskoDento/cache"
	"KuskoDento/config"
	"KuskoDento/controllers"
	"KuskoDento/database"
	"KuskoDento/handlers"
	"KuskoDento/middlewares"
	"KuskoDento/repositories"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, store *database.Store) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(store, cache)
	treatmentRepo := repositories.NewTreatmentRepository(store, cache)
	patientTreatmentRepo := repositories.NewPatientTreatmentRepository(store, cache)
	appointmentRepo := repositories.NewAppointmentRepository(store, cache)
	paymentRepo := repositories.NewPaymentRepository(store, cache)
	odontogramRepo := repositories.NewOdontogramRepository(store, cache)
	radiographRepo := repositories.NewRadiographRepository(store, cache)
	consentRepo := repositories.NewConsentRepository(store, cache)
	userRepo := repositories.NewUserRepository(store, cache)

	patientService := services.NewPatientService(patientRepo)
	treatmentService := services.NewTreatmentService(treatmentRepo)
	patientTreatmentService := services.NewPatientTreatmentService(patientTreatmentRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, paymentRepo, patientRepo, treatmentRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, appointmentRepo, patientRepo)
	odontogramService := services.NewOdontogramService(odontogramRepo)
	attachmentService := services.NewAttachmentService(radiographRepo, consentRepo)
	backupService := services.NewBackupService(store, cache)
	settingsService := services.NewSettingsService(store)
	userService := services.NewUserService(userRepo, store)

	patientHandler := handlers.NewPatientHandler(patientService)
	treatmentHandler := handlers.NewTreatmentHandler(treatmentService)
	patientTreatmentHandler := handlers.NewPatientTreatmentHandler(patientTreatmentService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	odontogramHandler := handlers.NewOdontogramHandler(odontogramService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	backupHandler := handlers.NewBackupHandler(backupService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		patientHandler,
		treatmentHandler,
		patientTreatmentHandler,
		appointmentHandler,
		paymentHandler,
		odontogramHandler,
		attachmentHandler,
		backupHandler,
		settingsHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
