package extract

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type extractRequest struct {
	JobLink string `json:"jobLink"`
}

type extractResponse struct {
	Result
	// RequiredSkills mirrors Skills so clients can feed the payload
	// straight into a job create request.
	RequiredSkills []string `json:"requiredSkills"`
}

// HandleExtractFromLink implements POST /v1/jobs/extract-from-link.
func (h *Handler) HandleExtractFromLink(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if !IsHTTPURL(req.JobLink) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Valid jobLink is required",
		})
	}

	result, err := h.service.ExtractFromLink(c.Context(), req.JobLink)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unable to extract details from this link.",
			"error":   err.Error(),
		})
	}
	return c.JSON(extractResponse{Result: *result, RequiredSkills: result.Skills})
}
