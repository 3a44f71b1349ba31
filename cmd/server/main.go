package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/handler"
	"github.com/reelsmith/api/internal/middleware"
	"github.com/reelsmith/api/internal/service"
	ws "github.com/reelsmith/api/internal/websocket"
	"github.com/reelsmith/api/pkg/response"
)

// statusPollInterval is the websocket watcher's poll period, the same 3
// seconds the CLI orchestrator uses.
const statusPollInterval = 3 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client (rate limiting only)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available, rate limiting disabled: %v", err)
	}

	// Initialize validator
	validate := validator.New()

	// Initialize external clients. Credentials are checked per request so
	// a partially configured server still serves the endpoints it can.
	anthropicClient := client.NewAnthropicClient(&cfg.Anthropic)
	creatomateClient := client.NewCreatomateClient(&cfg.Creatomate)
	mediaClient := client.NewMediaClient()

	var r2Client *client.R2Client
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Client, err = client.NewR2Client(&cfg.R2)
		if err != nil {
			log.Printf("Warning: R2 client not initialized: %v", err)
		}
	} else {
		log.Println("Info: R2 storage not configured, uploads will fail with a configuration error")
	}

	// Initialize services
	summariseService := service.NewSummariseService(anthropicClient)
	videoService := service.NewVideoService(creatomateClient)
	downloadService := service.NewDownloadService(mediaClient, cfg.Download.AllowedHosts)

	var uploadService *service.UploadService
	if r2Client != nil {
		uploadService = service.NewUploadService(r2Client)
	} else {
		uploadService = service.NewUploadService(nil)
	}

	// Initialize WebSocket hub: pushes fresh status lookups to subscribers
	hub := ws.NewHub(videoService.GetStatus, statusPollInterval)
	go hub.Run()

	// Initialize handlers
	summariseHandler := handler.NewSummariseHandler(summariseService, validate)
	videoHandler := handler.NewVideoHandler(videoService, validate)
	uploadHandler := handler.NewUploadHandler(uploadService, validate)
	downloadHandler := handler.NewDownloadHandler(downloadService)

	// Auth is optional: the tool runs open unless a secret is configured
	var apiAuthMiddleware fiber.Handler
	if cfg.JWT.Secret != "" {
		apiAuthMiddleware = middleware.NewAuthMiddleware(cfg.JWT.Secret).Authenticate()
	} else {
		apiAuthMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app. Body limit sits above the upload ceiling so
	// multipart overhead does not reject a file of exactly the maximum size.
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    service.MaxUploadSize + 2*1024*1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"anthropic":  anthropicClient.IsConfigured(),
				"creatomate": creatomateClient.IsConfigured(),
				"r2":         r2Client != nil,
				"auth":       cfg.JWT.Secret != "",
			},
		})
	})

	// API routes
	api := app.Group("/api", apiAuthMiddleware)

	api.Post("/summarise", rateLimiter.SummariseLimit(cfg.RateLimit.SummarisePerMin), summariseHandler.Summarise)
	api.Post("/generate-video", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), videoHandler.Generate)
	api.Get("/status", rateLimiter.StatusLimit(cfg.RateLimit.StatusPerMin), videoHandler.Status)
	api.Get("/voices", videoHandler.Voices)
	api.Post("/upload", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour), uploadHandler.Upload)
	api.Post("/upload-signature", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour), uploadHandler.Signature)
	api.Get("/download", rateLimiter.DownloadLimit(cfg.RateLimit.DownloadPerHour), downloadHandler.Download)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/renders/:renderId", websocket.New(func(c *websocket.Conn) {
		renderID := c.Params("renderId")
		hub.HandleConnection(c, renderID)
	}))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	switch code {
	case fiber.StatusRequestEntityTooLarge:
		return response.PayloadTooLarge(c, "Request body too large", nil)
	case fiber.StatusNotFound:
		return response.NotFound(c, message)
	}

	return response.Error(c, code, response.CodeUpstreamError, message, nil)
}
