package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"masar-backend/config"
	_ "masar-backend/docs" // Important for Swagger
	"masar-backend/internal/ai/gemini"
	v1 "masar-backend/internal/delivery/http/v1"
	"masar-backend/internal/repository/postgres"
	"masar-backend/internal/repository/redisstore"
	"masar-backend/internal/usecase"
	"masar-backend/pkg/auth"
	"masar-backend/pkg/database"
	"masar-backend/pkg/logger"
	"masar-backend/pkg/redis"
	"masar-backend/pkg/storage"
)

// @title           Masar Backend API
// @version         1.0
// @description     Talent marketplace backend: AI-assisted onboarding, certification assessments and recruiter matching.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("starting masar backend", "port", cfg.Port, "model", cfg.GeminiModel)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; consumers fall back to memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Gemini
	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories and Stores
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	passportRepo := postgres.NewPassportRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	attemptStore := redisstore.NewAttemptStore(redis.Client())
	storageClient := storage.NewClient(cfg.SupabaseUrl, cfg.SupabaseKey)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	onboardingUC := usecase.NewOnboardingUsecase(
		profileRepo,
		attemptStore,
		gemini.NewExtractor(generator),
		gemini.NewAssessor(generator),
	)
	profileUC := usecase.NewProfileUsecase(profileRepo, passportRepo, gemini.NewAnalyzer(generator))
	passportUC := usecase.NewPassportUsecase(profileRepo, passportRepo)
	jobUC := usecase.NewJobUsecase(jobRepo)
	suggestionUC := usecase.NewSuggestionUsecase(
		jobRepo,
		profileRepo,
		gemini.NewSuggester(generator),
		gemini.NewCopywriter(generator),
	)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		OnboardingUC: onboardingUC,
		ProfileUC:    profileUC,
		PassportUC:   passportUC,
		JobUC:        jobUC,
		SuggestionUC: suggestionUC,
		Storage:      storageClient,
		JWKSProvider: jwksProvider,
		Config:       cfg,
		DB:           dbPool,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", "error", err)
	}

	logger.Log.Info("server exiting")
}
