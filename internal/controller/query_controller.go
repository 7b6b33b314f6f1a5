package controller

import (
	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/internal/pkg/serverutils"
	"knowledgegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	DeleteHistory(ctx *fiber.Ctx) error
}

type queryController struct {
	qnaService service.IQnAService
}

func NewQueryController(qnaService service.IQnAService) IQueryController {
	return &queryController{
		qnaService: qnaService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query")
	h.Post("", c.Ask)
	h.Get("/delete_history", c.DeleteHistory)
}

func (c *queryController) Ask(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.New(apperr.KindBadRequest, "request body must be a JSON object")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.qnaService.AskQuestion(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// DeleteHistory clears one session's conversation memory, or every
// session's when all=true is passed explicitly.
func (c *queryController) DeleteHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id")
	allSessions := ctx.QueryBool("all", false)

	if err := c.qnaService.ClearHistory(ctx.Context(), sessionId, allSessions); err != nil {
		return err
	}

	message := "Chat history cleared for session " + sessionId
	if allSessions {
		message = "Chat history cleared for all sessions"
	}
	return ctx.JSON(dto.ClearHistoryResponse{Message: message})
}
