package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/config"
	"github.com/sadeeshasathsara/nexa-sub000/delivery"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/repository"
	"github.com/sadeeshasathsara/nexa-sub000/service"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using system environment variables")
	}

	// Register custom validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	// Boot DB
	db, _, err := config.BootDB()
	if err != nil {
		log.Fatal("❌ Failed to connect to database: ", err)
	}

	redisClient := config.InitRedisDB()

	// JWT secret validation
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET not found in .env")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("❌ JWT_SECRET must be at least 32 characters for security. Generate one with: openssl rand -base64 32")
	}

	merchantID := os.Getenv("PAYHERE_MERCHANT_ID")
	merchantSecret := os.Getenv("PAYHERE_MERCHANT_SECRET")
	if merchantID == "" || merchantSecret == "" {
		log.Fatal("❌ PAYHERE_MERCHANT_ID and PAYHERE_MERCHANT_SECRET are required")
	}

	// Init repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	otpRepo := repository.NewOTPRedisRepository(redisClient)
	sessionRepo := repository.NewSessionRedisRepository(redisClient)

	// Init services
	mailer := utils.NewMailerFromEnv()
	authService := service.NewAuthService(userRepo, otpRepo, sessionRepo, mailer, jwtSecret)
	courseService := service.NewCourseService(courseRepo)
	progressService := service.NewProgressService(progressRepo, courseRepo)
	donationService := service.NewDonationService(donationRepo, merchantID, merchantSecret)
	adminService := service.NewAdminService(adminRepo, userRepo, progressRepo, donationRepo)

	middleware.InitRateLimiter(redisClient)

	// Init Gin
	app := gin.Default()
	config.InitMiddleware(app)
	app.Use(middleware.RateLimiter())

	auth := middleware.NewAuthenticator(authService.GetAccessTokenManager(), sessionRepo, userRepo)

	// ========================================================================
	// INIT HANDLERS
	// ========================================================================
	delivery.NewAuthHandler(app, authService, auth)
	delivery.NewStudentHandler(app, courseService, progressService, auth)
	delivery.NewTutorHandler(app, courseService, auth)
	delivery.NewInstitutionHandler(app, courseService, auth)
	delivery.NewDonorHandler(app, donationService, auth)
	delivery.NewAdminHandler(app, authService, adminService, auth)

	// ========================================================================
	// GRACEFUL SHUTDOWN SETUP
	// ========================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	srvAddr := ":" + port

	srv := &http.Server{
		Addr:           srvAddr,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("🚀 Server running at http://localhost%s", srvAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}
