package serverutils

import (
	"errors"

	"knowledgegpt-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the pipeline error taxonomy to HTTP statuses.
// Only the taxonomy message reaches the client; wrapped causes stay in the
// server logs.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return ctx.Status(statusFor(appErr.Kind)).JSON(fiber.Map{
				"error":   string(appErr.Kind),
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error":   "HTTP_ERROR",
				"message": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "INTERNAL_ERROR",
			"message": "internal server error",
		})
	}
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest, apperr.KindInvalidFilter, apperr.KindLoad:
		return fiber.StatusBadRequest
	case apperr.KindUnsupportedFileType:
		return fiber.StatusNotAcceptable
	default:
		// Ingestion, QnA, Config: backend/infrastructure failures.
		return fiber.StatusInternalServerError
	}
}
