package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-service/internal/http/middleware"
	apperrors "asset-service/pkg/errors"
)

// NewHTTPErrorHandler maps sentinel errors to HTTP status codes, keeps
// client-error messages intact, and sanitizes anything internal before it
// reaches the wire.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		} else {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				code = http.StatusNotFound
			case errors.Is(err, apperrors.ErrSessionHeld),
				errors.Is(err, apperrors.ErrSessionState),
				errors.Is(err, apperrors.ErrConflict):
				code = http.StatusConflict
			case errors.Is(err, apperrors.ErrLocalValidation),
				errors.Is(err, apperrors.ErrValidation):
				code = http.StatusUnprocessableEntity
			case errors.Is(err, apperrors.ErrBadRequest),
				errors.Is(err, apperrors.ErrInvalidInput),
				errors.Is(err, apperrors.ErrNotRegenerable),
				errors.Is(err, apperrors.ErrEmptyContent),
				errors.Is(err, apperrors.ErrTruncatedSource):
				code = http.StatusBadRequest
			case errors.Is(err, apperrors.ErrUpstream),
				errors.Is(err, apperrors.ErrUpstreamShape):
				code = http.StatusBadGateway
			}

			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && code < 500 {
				message = appErr.Message
			} else if code == http.StatusBadGateway {
				message = "upstream service error"
			}
		}

		requestID := middleware.GetRequestID(c)
		if requestID == "" {
			requestID = c.Response().Header().Get(echo.HeaderXRequestID)
		}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		}
		if code >= 500 {
			log.Error("request failed", fields...)
			if code == http.StatusInternalServerError {
				message = "internal server error"
			}
		} else {
			log.Warn("request rejected", fields...)
		}

		if err := c.JSON(code, map[string]string{
			"error":      message,
			"request_id": requestID,
		}); err != nil {
			log.Error("error response write failed", zap.Error(err))
		}
	}
}
