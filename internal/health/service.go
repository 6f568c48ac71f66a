package health

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"jobpilot/internal/logger"
	"jobpilot/internal/platform/postgres"
	"jobpilot/internal/platform/redis"
)

const componentCheckTimeout = 3 * time.Second

type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

type checker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	log        *logger.Logger
	components map[string]checker

	mu    sync.RWMutex
	ready bool
}

func NewHealthHandler(pg *postgres.Service, cache *redis.Service) *HealthHandler {
	components := map[string]checker{}
	if pg != nil {
		components["postgres"] = pg
	}
	if cache != nil {
		components["redis"] = cache
	}
	return &HealthHandler{
		log:        logger.New("Health"),
		components: components,
	}
}

// SetReady flips the readiness bit once startup wiring has finished.
func (h *HealthHandler) SetReady(ready bool) {
	h.mu.Lock()
	h.ready = ready
	h.mu.Unlock()
}

// HandleHealth checks every registered component concurrently and reports
// 200 when all pass, 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), componentCheckTimeout)
	defer cancel()

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(h.components))
	var wg sync.WaitGroup
	for name, component := range h.components {
		wg.Add(1)
		go func(name string, component checker) {
			defer wg.Done()
			results <- result{name: name, err: component.HealthCheck(ctx)}
		}(name, component)
	}
	wg.Wait()
	close(results)

	healthy := true
	statuses := make(map[string]componentStatus, len(h.components))
	for r := range results {
		if r.err != nil {
			healthy = false
			statuses[r.name] = componentStatus{Status: "down", Error: r.err.Error()}
			h.log.LogWarnf("health check failed for %s: %v", r.name, r.err)
			continue
		}
		statuses[r.name] = componentStatus{Status: "up"}
	}

	h.mu.RLock()
	ready := h.ready
	h.mu.RUnlock()

	status := "ok"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(healthResponse{Status: status, Ready: ready, Components: statuses})
}

// HealthLimiter keeps aggressive orchestrator polling from turning the
// health endpoint into load.
func HealthLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	})
}
