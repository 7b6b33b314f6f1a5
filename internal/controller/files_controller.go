package controller

import (
	"encoding/json"

	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFilesController interface {
	RegisterRoutes(r fiber.Router)
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type filesController struct {
	ingestionService service.IIngestionService
}

func NewFilesController(ingestionService service.IIngestionService) IFilesController {
	return &filesController{
		ingestionService: ingestionService,
	}
}

func (c *filesController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Post("/delete", c.Delete)
	h.Get("/list", c.List)
}

// Delete removes every document matching the "filter" form field, a JSON
// object of metadata equality constraints.
func (c *filesController) Delete(ctx *fiber.Ctx) error {
	raw := ctx.FormValue("filter")
	if raw == "" {
		return apperr.InvalidFilter("form field \"filter\" is required")
	}

	var filter map[string]string
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return apperr.InvalidFilter("filter must be a JSON object of string values")
	}

	res, err := c.ingestionService.Delete(ctx.Context(), filter)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *filesController) List(ctx *fiber.Ctx) error {
	files, err := c.ingestionService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ListFilesResponse{Files: files})
}
