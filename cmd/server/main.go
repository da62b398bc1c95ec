package main

import (
	"context"
	"log"

	"github.com/SrikarVamsi/Gem/config"
	"github.com/SrikarVamsi/Gem/handlers"
	"github.com/SrikarVamsi/Gem/repository"
	"github.com/SrikarVamsi/Gem/scam"
	"github.com/SrikarVamsi/Gem/service"
	"github.com/SrikarVamsi/Gem/sources"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env from the working directory or the project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; check requests will fail at synthesis")
	}

	// Build the pipeline components
	finder := sources.NewFinder(cfg.TrustedDomains, cfg.SearchTimeout, logger)
	fetcher := sources.NewFetcher(cfg.FetchTimeout, cfg.MaxSourceChars, logger)
	detector := scam.NewDetector()

	verdictService := service.NewVerdictService(
		service.VerdictWithAPIKey(cfg.GeminiAPIKey),
		service.VerdictWithModelName(cfg.GeminiModel),
		service.VerdictWithPreviewChars(cfg.PreviewChars),
		service.VerdictWithLogger(logger),
	)
	defer verdictService.Close()

	checkService := service.NewCheckService(
		service.CheckWithFinder(finder),
		service.CheckWithFetcher(fetcher),
		service.CheckWithDetector(detector),
		service.CheckWithSynthesizer(verdictService),
		service.CheckWithSearchLimit(cfg.SearchLimit),
		service.CheckWithLogger(logger),
	)

	// Feedback persistence is optional; without a database the endpoint
	// acknowledges and discards
	var feedbackStore handlers.FeedbackStore
	if cfg.DatabaseURL != "" {
		pool, err := initPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize Postgres", zap.Error(err))
		}
		defer pool.Close()
		feedbackStore = repository.NewFeedbackRepository(pool)
		logger.Info("Feedback persistence enabled")
	}

	checkHandler := handlers.NewCheckHandler(checkService, feedbackStore, logger)

	// Setup Gin router
	r := gin.Default()

	// Permissive CORS for the browser extension and local dev
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.POST("/check", checkHandler.Check)
	r.POST("/feedback", checkHandler.Feedback)

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}
