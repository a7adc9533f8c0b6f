package http

import (
	"errors"
	"net/http"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// badRequest answers for input that never reached a handler.
func badRequest(c echo.Context, message string, err error) error {
	if err != nil {
		message += ": " + err.Error()
	}
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail maps a handler error to its HTTP status. Unexpected errors are logged
// and hidden behind a generic message.
func (s *Server) fail(c echo.Context, message string, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), message,
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, Error{Code: code, Message: message})
	}
	return c.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrStaleOrderState),
		errors.Is(err, ports.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, services.ErrPreconditionViolation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errMissing(name string) error {
	return errs.NewValueIsRequiredError(name)
}
