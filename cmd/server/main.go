package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"interioai/internal/catalog"
	"interioai/internal/config"
	"interioai/internal/handler"
	applog "interioai/internal/logger"
	"interioai/internal/model"
	"interioai/internal/repository"
	"interioai/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const serviceName = "interioai"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applog.New(cfg.Logging.Level, cfg.Logging.Format, serviceName)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("InterioAI design server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	// Catalog and rules are loaded once and read-only afterwards
	prices, err := loadPricingTable(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load pricing catalog", zap.Error(err))
	}
	rules := catalog.DefaultRules()
	if err := rules.Validate(); err != nil {
		logger.Fatal("Invalid suggestion rules", zap.Error(err))
	}

	engine := service.NewSuggestionEngine(rules, logger)
	estimator := service.NewCostEstimator(prices, catalog.Currency)
	conversion := service.CurrencyConversion{Rate: cfg.Pricing.Multiplier, Currency: cfg.Pricing.Currency}
	logger.Info("Catalog loaded",
		zap.String("source", cfg.Pricing.Source),
		zap.Int("prices", prices.Len()),
		zap.String("match_strategy", string(prices.Strategy())),
		zap.String("display_currency", cfg.Pricing.Currency),
		zap.Float64("multiplier", cfg.Pricing.Multiplier),
	)

	// Model server hosts depth, diffusion and plotting; it may also detect
	modelServer := service.NewModelServerClient(cfg.ModelServer, cfg.Upload.OutputDir, logger)

	detector, err := newDetector(ctx, cfg, modelServer, logger)
	if err != nil {
		logger.Fatal("Failed to initialize detector", zap.Error(err))
	}

	if cfg.Redis.Enabled {
		redisClient, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Detection cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			defer redisClient.Close()
			detector = service.NewCachedDetector(detector, repository.NewRedisKVStore(redisClient), cfg.Redis.TTL, logger)
			logger.Info("Detection cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
		}
	}

	designService := service.NewDesignService(engine, estimator, detector, logger,
		service.WithDimensionEstimator(modelServer),
		service.WithRenderer(modelServer),
		service.WithVisualizer(modelServer),
		service.WithCurrencyConversion(conversion),
		service.WithDetectTimeout(cfg.Pipeline.DetectTimeout),
	)

	logger.Info("Services initialized")

	defaultTier := model.ParseBudgetTier(cfg.Pricing.DefaultTier)

	// Initialize handlers
	designHandler := handler.NewDesignHandler(designService, cfg.Upload, cfg.Pipeline, defaultTier, logger)
	estimateHandler := handler.NewEstimateHandler(estimator, conversion, defaultTier, logger)
	suggestionHandler := handler.NewSuggestionHandler(engine)
	catalogHandler := handler.NewCatalogHandler(estimator, engine, cfg.Upload.OutputDir)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger(logger))
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader, "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"service":           serviceName,
			"detector":          cfg.Detector.Provider,
			"detection_cache":   cfg.Redis.Enabled,
			"catalog_source":    cfg.Pricing.Source,
			"version":           Version,
			"build_time":        BuildTime,
			"git_commit":        GitCommit,
			"timestamp":         time.Now().Format(time.RFC3339),
			"model_server_base": cfg.ModelServer.BaseURL,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Design pipeline
		apiV1.POST("/analyze", designHandler.Analyze)
		apiV1.POST("/analyze/stream", designHandler.AnalyzeStream) // Streaming analysis

		// Engine and estimator without vision
		apiV1.POST("/suggestions", suggestionHandler.Suggest)
		apiV1.POST("/estimate", estimateHandler.Estimate)
		apiV1.POST("/estimate/compare", estimateHandler.Compare)
		apiV1.POST("/estimate/export", estimateHandler.Export)

		// Catalog and generated files
		apiV1.GET("/catalog", catalogHandler.Catalog)
		apiV1.GET("/download/:filename", catalogHandler.Download)
	}

	setupStaticFiles(router, cfg.Upload.OutputDir, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// loadPricingTable reads the catalog from the configured source and validates it
func loadPricingTable(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.PricingTable, error) {
	opt := catalog.WithMatchStrategy(catalog.ParseMatchStrategy(cfg.Pricing.MatchStrategy))

	if cfg.Pricing.Source != config.CatalogPostgres {
		prices := catalog.DefaultPricingTable(opt)
		return prices, prices.Validate()
	}

	repo, err := repository.NewCatalogRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	logger.Info("Connected to PostgreSQL catalog", zap.String("host", cfg.PostgreSQL.Host))
	return repo.LoadPricingTable(ctx, opt)
}

// newDetector builds the configured detection backend
func newDetector(ctx context.Context, cfg *config.Config, modelServer *service.ModelServerClient, logger *zap.Logger) (service.Detector, error) {
	switch cfg.Detector.Provider {
	case config.DetectorOpenAI:
		logger.Info("Using OpenAI vision detector",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("model", cfg.OpenAI.VisionModel),
		)
		return service.NewOpenAIDetector(service.NewOpenAIClient(&cfg.OpenAI), logger), nil
	case config.DetectorGemini:
		logger.Info("Using Gemini vision detector", zap.String("model", cfg.Gemini.Model))
		return service.NewGeminiDetector(ctx, cfg.Gemini, logger)
	default:
		logger.Info("Using model server detector", zap.String("base_url", cfg.ModelServer.BaseURL))
		return modelServer, nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
