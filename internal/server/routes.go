package server

import (
	"github.com/gofiber/fiber/v2"

	"jobpilot/internal/core/auth"
	"jobpilot/internal/core/extract"
	"jobpilot/internal/core/jobs"
	"jobpilot/internal/core/match"
	"jobpilot/internal/health"
)

// Dependencies carries every handler the router wires up.
type Dependencies struct {
	Auth    *auth.Handler
	Extract *extract.Handler
	Jobs    *jobs.Handler
	Match   *match.Handler
	Health  *health.HealthHandler

	// Protect guards everything under /v1 except health and auth.
	Protect fiber.Handler
}

func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/v1/health", health.HealthLimiter(), deps.Health.HandleHealth)

	v1 := app.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", deps.Auth.HandleRegister)
	authGroup.Post("/login", deps.Auth.HandleLogin)

	jobsGroup := v1.Group("/jobs", deps.Protect)
	jobsGroup.Get("/stats", deps.Jobs.HandleStats)
	jobsGroup.Get("/locations/suggest", deps.Jobs.HandleSuggestLocations)
	jobsGroup.Post("/extract-from-link", deps.Extract.HandleExtractFromLink)
	jobsGroup.Post("/", deps.Jobs.HandleCreate)
	jobsGroup.Get("/", deps.Jobs.HandleList)
	jobsGroup.Post("/:id/apply", deps.Jobs.HandleApply)
	jobsGroup.Get("/:id", deps.Jobs.HandleGet)
	jobsGroup.Put("/:id", deps.Jobs.HandleUpdate)
	jobsGroup.Delete("/:id", deps.Jobs.HandleDelete)

	aiGroup := v1.Group("/ai", deps.Protect)
	aiGroup.Post("/match-score", deps.Match.HandleMatchScore)
	aiGroup.Post("/match-score/upload", deps.Match.HandleMatchScoreUpload)
}
