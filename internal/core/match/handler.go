package match

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobpilot/internal/core/resume"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleMatchScore implements POST /v1/ai/match-score with a JSON body.
func (h *Handler) HandleMatchScore(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	analysis, err := h.service.Analyze(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(analysis)
}

// HandleMatchScoreUpload implements POST /v1/ai/match-score/upload with a
// multipart body carrying the resume as a PDF or DOCX file.
func (h *Handler) HandleMatchScoreUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resumeFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "resumeFile is required"})
	}
	if fileHeader.Size > resume.MaxFileBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": resume.ErrFileTooLarge.Error()})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Could not read resumeFile"})
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, resume.MaxFileBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Could not read resumeFile"})
	}
	resumeText, err := resume.TextFromFile(fileHeader.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	req := Request{
		ResumeText:     resumeText,
		JobDescription: c.FormValue("jobDescription"),
		JobLink:        c.FormValue("jobLink"),
		Role:           c.FormValue("role"),
		CompanyName:    c.FormValue("companyName"),
	}
	if skills := strings.TrimSpace(c.FormValue("requiredSkills")); skills != "" {
		for _, s := range strings.Split(skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.RequiredSkills = append(req.RequiredSkills, s)
			}
		}
	}

	analysis, err := h.service.Analyze(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	// echo back the parsed text so the client can reuse it without a
	// second upload
	analysis.ResumeFileName = fileHeader.Filename
	analysis.ResumeText = resumeText
	if len(analysis.ResumeText) > maxResumeEcho {
		analysis.ResumeText = analysis.ResumeText[:maxResumeEcho]
	}
	return c.JSON(analysis)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrResumeTooShort),
		errors.Is(err, ErrDescriptionMissing),
		errors.Is(err, ErrInvalidJobLink):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete the analysis",
			"error":   err.Error(),
		})
	}
}
