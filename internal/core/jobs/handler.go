package jobs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobpilot/internal/core/auth"
	"jobpilot/internal/utils/parser"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	job, err := h.service.Create(auth.UserID(c), input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *Handler) HandleList(c *fiber.Ctx) error {
	var params ListParams
	if err := parser.ParseQuery(&params, func(key string) string { return c.Query(key) }); err != nil {
		return badRequest(c, err.Error())
	}
	result, err := h.service.List(auth.UserID(c), params)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}
	job, err := h.service.Get(auth.UserID(c), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(job)
}

func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	job, err := h.service.Update(auth.UserID(c), id, input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(job)
}

func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}
	if err := h.service.Delete(auth.UserID(c), id); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

func (h *Handler) HandleApply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}
	job, err := h.service.Apply(auth.UserID(c), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Application opened",
		"data": fiber.Map{
			"id":          job.ID,
			"status":      job.Status,
			"appliedDate": job.AppliedDate,
			"jobLink":     job.JobLink,
		},
	})
}

func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(auth.UserID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(stats)
}

func (h *Handler) HandleSuggestLocations(c *fiber.Ctx) error {
	suggestions, err := h.service.SuggestLocations(auth.UserID(c), c.Query("q"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found"})
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrNoJobLink):
		return badRequest(c, err.Error())
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}
