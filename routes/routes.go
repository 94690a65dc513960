package routes

import (
	"HavenCare/cache"
	"HavenCare/config"
	"HavenCare/controllers"
	"HavenCare/handlers"
	"HavenCare/middlewares"
	"HavenCare/repositories"
	"HavenCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

	// Initialize repositories
	patientRepo := repositories.NewPatientRepository(cache)
	providerRepo := repositories.NewHMOProviderRepository(cache)
	departmentRepo := repositories.NewDepartmentRepository()
	coverageRepo := repositories.NewCoverageRepository(cache)
	overrideRepo := repositories.NewOverrideRepository(cache)
	billRepo := repositories.NewBillRepository(cache)
	paymentRepo := repositories.NewPaymentRepository(cache)
	shiftRepo := repositories.NewShiftRepository(cache)
	claimRepo := repositories.NewClaimRepository(cache)
	codeRepo := repositories.NewBillingCodeRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	// Initialize services
	coverageService := services.NewCoverageService(coverageRepo, overrideRepo)
	billingService := services.NewBillingService(billRepo, patientRepo, coverageService)
	paymentService := services.NewPaymentService(paymentRepo, shiftRepo)
	claimService := services.NewClaimService(claimRepo, billRepo, paymentRepo, overrideRepo, patientRepo)
	codeService := services.NewBillingCodeService(codeRepo, billRepo, patientRepo)
	overrideService := services.NewOverrideService(overrideRepo)
	registryService := services.NewRegistryService(patientRepo, providerRepo, departmentRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	billHandler := handlers.NewBillHandler(billingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	codeHandler := handlers.NewBillingCodeHandler(codeService)
	claimHandler := handlers.NewClaimHandler(claimService)
	coverageHandler := handlers.NewCoverageHandler(coverageService, overrideService)
	registryHandler := handlers.NewRegistryHandler(registryService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupBillingRoutes(
		router,
		billHandler,
		paymentHandler,
		codeHandler,
		claimHandler,
		coverageHandler,
		registryHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
