package serverutils

import (
	"errors"

	"cascade-softdelete/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into BaseResponse
// bodies. AppError decides the status; internal causes are never exposed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err)
		}
		code := appErr.HTTPStatus
		if code == 0 {
			code = fiber.StatusInternalServerError
		}
		if len(appErr.Details) > 0 {
			return ctx.Status(code).JSON(ErrorResponseWithData(code, appErr.Message, appErr.Details))
		}
		return ctx.Status(code).JSON(ErrorResponse(code, appErr.Message))
	}
}
