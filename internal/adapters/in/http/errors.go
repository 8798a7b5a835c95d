package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes returned in failure bodies.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidOTP         = "INVALID_OTP"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeVehicleUnavailable = "VEHICLE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an error to its status and code. The order matters: the
// handoff and vehicle sentinels are refinements of broader families.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrInvalidOTP):
		return http.StatusBadRequest, CodeInvalidOTP
	case errors.Is(err, logistics.ErrVehicleUnavailable):
		return http.StatusConflict, CodeVehicleUnavailable
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, CodeValidation
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, codeForStatus(he.Code)
	}
	return http.StatusInternalServerError, CodeInternal
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return http.StatusText(status)
}

func messageFor(err error, status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Not authorized to access this route"
	case http.StatusInternalServerError:
		return "Internal server error"
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

func writeError(c echo.Context, err error) error {
	status, code := classify(err)
	return c.JSON(status, errorResponse{
		Success: false,
		Code:    code,
		Message: messageFor(err, status),
	})
}

// errorHandler renders errors returned by handlers and middleware with the
// same body as handled failures.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, _ := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if writeErr := writeError(c, err); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}
