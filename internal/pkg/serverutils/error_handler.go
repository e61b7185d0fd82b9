package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts domain errors into HTTP responses.
// Validation problems map to 400, upstream AI failures to 502 and a
// missing index to 503; anything unclassified is a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			status := statusFor(domainErr.Type)
			if status >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"type":  string(domainErr.Type),
					"error": err.Error(),
				})
			}
			return ctx.Status(status).JSON(fiber.Map{
				"error": domainErr.Message,
				"type":  string(domainErr.Type),
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func statusFor(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.ErrorTypeInvalidQuery:
		return fiber.StatusBadRequest
	case apperrors.ErrorTypeEmbeddingFailure, apperrors.ErrorTypeGenerationFailure:
		return fiber.StatusBadGateway
	case apperrors.ErrorTypeIndexUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
