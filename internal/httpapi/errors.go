package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/dmitrijs2005/contactpro/internal/common"
)

// statusFor maps a domain error onto an HTTP status and an error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrUnsupportedFormat):
		return fiber.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, common.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, common.ErrParse):
		return fiber.StatusBadRequest, "PARSE_FAILED"
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, common.ErrImportInProgress):
		return fiber.StatusConflict, "IMPORT_IN_PROGRESS"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func errorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: &ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func successResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// validationDetails flattens validator errors into field -> tag pairs.
func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// errorHandler renders errors returned by handlers and by fiber itself.
func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "ROUTE_NOT_FOUND"
		}
		return errorResponse(c, fe.Code, fe.Message, code, nil)
	}

	status, code := statusFor(err)
	return errorResponse(c, status, err.Error(), code, nil)
}
