package serverutils

import (
	"encoding/json"
	"errors"

	"prep-tool-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrUnsupportedFile):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
