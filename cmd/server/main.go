package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/playvault/backend/docs"
	"github.com/playvault/backend/internal/database"
	mW "github.com/playvault/backend/internal/middleware"
	"github.com/playvault/backend/internal/models"
	"github.com/playvault/backend/internal/services"
)

// @title PlayVault Transaction Engine API
// @version 1.0
// @description API for player deposit/withdrawal processing with operator approval workflow
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	viper.ReadInConfig()        // read .env file

	viper.SetEnvPrefix("")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.BindEnv("engine.auto_complete_below", "ENGINE_AUTO_COMPLETE_BELOW")
	viper.BindEnv("engine.flag_window_count", "ENGINE_FLAG_WINDOW_COUNT")
	viper.BindEnv("engine.flag_single_amount", "ENGINE_FLAG_SINGLE_AMOUNT")
	viper.BindEnv("engine.flag_window_total", "ENGINE_FLAG_WINDOW_TOTAL")
	viper.BindEnv("limits.default_daily_deposit", "DEFAULT_DAILY_DEPOSIT_LIMIT")
	viper.BindEnv("limits.default_daily_withdrawal", "DEFAULT_DAILY_WITHDRAWAL_LIMIT")
	viper.BindEnv("seed.operator_password", "SEED_OPERATOR_PASSWORD")

	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)
	viper.SetDefault("limits.default_daily_deposit", 10000)
	viper.SetDefault("limits.default_daily_withdrawal", 5000)
	viper.SetDefault("seed.operator_password", "ChangeMe!Operator1")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "PlayVault Transaction Engine API"
	docs.SwaggerInfo.Description = "API for player deposit/withdrawal processing with operator approval workflow"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize storage
	db := database.InitDatabase()
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	operatorHash, err := services.HashPassword(viper.GetString("seed.operator_password"))
	if err != nil {
		log.Fatalf("Failed to hash seed operator password: %v", err)
	}
	if err := database.Seed(db, operatorHash); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize services
	notificationService := services.NewNotificationService(db)
	transactionService := services.NewTransactionService(db, notificationService, services.DefaultSuspicionPolicy())
	authService := services.NewAuthService(db, redisClient)
	playerService := services.NewPlayerService(db)
	paymentMethodService := services.NewPaymentMethodService(db, redisClient)

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)
		r.Post("/auth/logout", authService.Logout)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/players/me", playerService.GetMyProfile)
			r.Put("/players/me", playerService.UpdateMyProfile)
			r.Get("/players/me/balance", playerService.GetMyBalance)

			r.Get("/payment-methods", paymentMethodService.ListPaymentMethods)
			r.Get("/payment-methods/{methodId}", paymentMethodService.GetPaymentMethod)

			r.Get("/notifications", notificationService.ListNotifications)
			r.Put("/notifications/{notificationId}/read", notificationService.MarkNotificationRead)

			r.Post("/transactions/deposit", transactionService.CreateDeposit)
			r.Post("/transactions/withdraw", transactionService.CreateWithdrawal)
			r.Get("/transactions/my", transactionService.ListMyTransactions)

			// Operator endpoints
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireRole(models.RoleOperator, models.RoleAdministrator, models.RoleComplianceOfficer))

				r.Get("/transactions/pending", transactionService.ListPendingTransactions)
				r.Get("/transactions/flagged", transactionService.ListFlaggedTransactions)
				r.Post("/transactions/{txId}/approve", transactionService.ApproveTransaction)
				r.Post("/transactions/{txId}/reject", transactionService.RejectTransaction)
			})

			r.Get("/transactions/{txId}", transactionService.GetTransaction)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
