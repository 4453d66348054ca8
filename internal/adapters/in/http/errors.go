package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	kindUnauthenticated = "unauthenticated"
	kindTimeout         = "timeout"
	kindUnavailable     = "unavailable"
)

var kindStatus = map[errs.Kind]int{
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindValidation:        http.StatusBadRequest,
	errs.KindForbidden:         http.StatusForbidden,
	errs.KindInvalidTransition: http.StatusConflict,
	errs.KindConflict:          http.StatusConflict,
	errs.KindInsufficientFunds: http.StatusUnprocessableEntity,
	errs.KindInvalidAmount:     http.StatusUnprocessableEntity,
	errs.KindInsufficientStock: http.StatusUnprocessableEntity,
	errs.KindEmptySelection:    http.StatusUnprocessableEntity,
	errs.KindDependencyFailed:  http.StatusServiceUnavailable,
	errs.KindInternal:          http.StatusInternalServerError,
}

func statusOf(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// describe turns any handler error into the response status and body.
// Internal errors never leak their message.
func describe(err error) (int, servers.Error) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, servers.Error{Code: he.Code, Kind: kindOfStatus(he.Code), Message: fmt.Sprint(he.Message)}
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, servers.Error{
			Code:    http.StatusUnauthorized,
			Kind:    kindUnauthenticated,
			Message: err.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, servers.Error{
			Code:    http.StatusGatewayTimeout,
			Kind:    kindTimeout,
			Message: "request timed out",
		}
	}

	kind := errs.KindOf(err)
	status := statusOf(kind)
	message := err.Error()
	if kind == errs.KindInternal {
		message = "internal server error"
	}
	return status, servers.Error{Code: status, Kind: string(kind), Message: message}
}

func kindOfStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(errs.KindValidation)
	case http.StatusUnauthorized:
		return kindUnauthenticated
	case http.StatusForbidden:
		return string(errs.KindForbidden)
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return string(errs.KindNotFound)
	case http.StatusConflict:
		return string(errs.KindConflict)
	case http.StatusServiceUnavailable:
		return kindUnavailable
	case http.StatusGatewayTimeout:
		return kindTimeout
	default:
		return string(errs.KindInternal)
	}
}

// errorHandler renders every error as {code, kind, message}.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := describe(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
