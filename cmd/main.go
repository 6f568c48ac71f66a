package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"jobpilot/internal/config"
	"jobpilot/internal/core/auth"
	"jobpilot/internal/core/extract"
	"jobpilot/internal/core/jobs"
	"jobpilot/internal/core/match"
	"jobpilot/internal/health"
	"jobpilot/internal/logger"
	"jobpilot/internal/platform/llm"
	"jobpilot/internal/platform/postgres"
	"jobpilot/internal/platform/redis"
	"jobpilot/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewWithEnv("Main", cfg.AppEnv)
	log.LogInfof("starting jobpilot (env=%s)", cfg.AppEnv)

	pg, err := postgres.New(cfg.PostgresDSN)
	if err != nil {
		log.LogErrorf("postgres connect: %v", err)
		os.Exit(1)
	}
	if err := pg.Migrate(&auth.User{}, &jobs.Job{}); err != nil {
		log.LogErrorf("migrate: %v", err)
		os.Exit(1)
	}

	cache, err := redis.New(redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err != nil {
		// the match cache is an optimization, not a dependency
		log.LogWarnf("redis unavailable, match results will not be cached: %v", err)
		cache = nil
	}

	llmService, err := llm.NewService(llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.GeminiAPIKey,
		Model:    cfg.DefaultLLMModel,
	})
	if err != nil {
		log.LogErrorf("llm init: %v", err)
		os.Exit(1)
	}

	extractService := extract.NewService()
	jobsService := jobs.NewService(pg)
	authService := auth.NewService(pg, cfg.JWTSecret)
	matchService := match.NewService(llmService, extractService, cache, cfg.MatchCacheTTLSeconds)

	app := fiber.New(fiber.Config{
		AppName:      "jobpilot",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    8 << 20,
		JSONEncoder: func(v interface{}) ([]byte, error) {
			// keep URLs readable in responses
			return jsonMarshalNoEscape(v)
		},
	})
	app.Use(recover.New())
	app.Use(cors.New())

	healthHandler := health.NewHealthHandler(pg, cache)
	server.RegisterRoutes(app, server.Dependencies{
		Auth:    auth.NewHandler(authService),
		Extract: extract.NewHandler(extractService),
		Jobs:    jobs.NewHandler(jobsService),
		Match:   match.NewHandler(matchService),
		Health:  healthHandler,
		Protect: auth.Protect(authService),
	})
	healthHandler.SetReady(true)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.LogErrorf("server stopped: %v", err)
			os.Exit(1)
		}
	}()
	log.LogInfof("listening on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.LogInfo("shutting down")
	healthHandler.SetReady(false)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.LogErrorf("shutdown: %v", err)
	}
	if cache != nil {
		_ = cache.Close()
	}
}

func jsonMarshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode appends a newline
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
