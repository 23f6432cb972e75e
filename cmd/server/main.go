package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/adapter/cache"
	"github.com/seu-repo/campus-assistant/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/campus-assistant/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/campus-assistant/internal/adapter/llm"
	"github.com/seu-repo/campus-assistant/internal/adapter/speech"
	"github.com/seu-repo/campus-assistant/internal/adapter/storage/file"
	"github.com/seu-repo/campus-assistant/internal/adapter/translate"
	"github.com/seu-repo/campus-assistant/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/campus-assistant/internal/adapter/websocket"
	"github.com/seu-repo/campus-assistant/internal/observability/telemetry"
	"github.com/seu-repo/campus-assistant/internal/ports"
	"github.com/seu-repo/campus-assistant/internal/service/assistant"
	"github.com/seu-repo/campus-assistant/internal/service/classifier"
	"github.com/seu-repo/campus-assistant/internal/service/health"
	"github.com/seu-repo/campus-assistant/internal/service/knowledge"
	"github.com/seu-repo/campus-assistant/internal/service/responder"
	"github.com/seu-repo/campus-assistant/pkg/config"
)

const serviceName = "campus-assistant"

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting Campus Assistant",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.App.Version, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Resolve API keys from Vault when configured
	if cfg.Vault.Address != "" {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if key, err := secrets.GetTranslateAPIKey(); err == nil {
			cfg.Translate.APIKey = key
		}
		if key, err := secrets.GetSpeechAPIKey(); err == nil {
			cfg.Speech.APIKey = key
		}
		if key, err := secrets.GetOpenRouterAPIKey(); err == nil {
			cfg.LLM.APIKey = key
		}
	}

	// 5. Initialize Knowledge Store (flat file)
	store := file.NewStore(cfg.Knowledge.File, logger)

	// 6. Initialize Cache (Redis with in-memory fallback)
	var appCache ports.Cache
	if cfg.Cache.RedisURL != "" {
		appCache, err = cache.NewRedisCache(cfg.Cache.RedisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
			appCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
		}
	} else {
		appCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
	}
	defer appCache.Close()

	knowledgeService := knowledge.NewService(store, appCache, cfg.Cache.SearchTTL, logger)

	// 7. Initialize External Adapters
	var translator ports.Translator
	if cfg.FeatureFlags.Translation && cfg.Translate.Endpoint != "" {
		translator = translate.NewClient(cfg.Translate, cfg.CircuitBreaker, logger)
	}

	var transcriber ports.Transcriber
	var synthesizer ports.Synthesizer
	if cfg.FeatureFlags.Voice && cfg.Speech.STTEndpoint != "" {
		transcriber = speech.NewTranscriber(cfg.Speech, cfg.CircuitBreaker, logger)
	}
	if cfg.FeatureFlags.Voice && cfg.Speech.TTSEndpoint != "" {
		synthesizer = speech.NewSynthesizer(cfg.Speech, logger)
	}

	var completer ports.Completer
	if cfg.FeatureFlags.LLMFallback && cfg.LLM.APIKey != "" {
		completer = llm.NewClient(cfg.LLM, cfg.CircuitBreaker, logger)
	}

	// 8. Initialize Services (Business Logic Layer)
	classifierService := classifier.NewService(translator, cfg.Assistant.TargetLanguage, cfg.FeatureFlags.Translation, logger)
	responderService := responder.NewService(knowledgeService, cfg.Assistant.MaxEventEnrichment, logger)
	assistantService := assistant.NewService(classifierService, responderService, assistant.Options{
		Transcriber:        transcriber,
		Synthesizer:        synthesizer,
		Completer:          completer,
		HistoryLimit:       cfg.Assistant.HistoryLimit,
		LLMConfidenceFloor: cfg.Assistant.LLMConfidenceFloor,
		LLMEnabled:         cfg.FeatureFlags.LLMFallback,
	}, logger)

	healthService := health.NewService(&health.Config{
		Version:   cfg.App.Version,
		Knowledge: knowledgeService,
		Cache:     appCache,
	}, logger)

	// 9. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}

	// Health Check Endpoints
	healthHandler := health.NewFiberHandler(healthService)
	healthHandler.RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsPath := cfg.Prometheus.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		app.Get(metricsPath, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API Routes
	chatHandler := handlers.NewChatHandler(assistantService, cfg.App.Version, logger)
	voiceHandler := handlers.NewVoiceHandler(assistantService, logger)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService, logger)

	app.Get("/", chatHandler.Home)

	api := app.Group("/api")
	api.Post("/text", chatHandler.HandleText)
	api.Post("/voice", voiceHandler.HandleVoice)
	api.Get("/chat/history", chatHandler.History)

	kb := api.Group("/knowledge")
	kb.Get("/summary", knowledgeHandler.Summary)
	kb.Get("/campus", knowledgeHandler.GetCampusInfo)
	kb.Put("/campus", knowledgeHandler.SetCampusInfo)
	kb.Post("/buildings", knowledgeHandler.UpsertBuilding)
	kb.Get("/buildings/:slug", knowledgeHandler.GetBuilding)
	kb.Post("/events", knowledgeHandler.UpsertEvent)
	kb.Get("/events", knowledgeHandler.SearchEvents)
	kb.Get("/events/:slug", knowledgeHandler.GetEvent)
	kb.Post("/clubs", knowledgeHandler.UpsertClub)
	kb.Get("/clubs", knowledgeHandler.SearchClubs)
	kb.Get("/clubs/:slug", knowledgeHandler.GetClub)
	kb.Post("/services", knowledgeHandler.UpsertService)
	kb.Get("/services", knowledgeHandler.SearchServices)
	kb.Get("/services/:slug", knowledgeHandler.GetService)
	kb.Get("/export", knowledgeHandler.Export)
	kb.Post("/import", knowledgeHandler.Import)

	// WebSocket routes
	if cfg.FeatureFlags.Voice {
		voiceStreamHandler := wsAdapter.NewVoiceStreamHandler(assistantService, logger)

		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/voice", websocket.New(func(c *websocket.Conn) {
			voiceStreamHandler.HandleVoiceStream(c)
		}))
	}

	// 10. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
