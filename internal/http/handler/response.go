package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError writes a one-field error body. This path is for request-shape
// problems caught in the handler itself; service-layer errors are returned
// up to the server's HTTPErrorHandler instead.
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

// handleHTTPError flattens an echo.HTTPError from a bind helper into the
// same one-field error body.
func handleHTTPError(c echo.Context, err error) error {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return respondError(c, http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError))
	}

	msg, _ := he.Message.(string)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	return respondError(c, he.Code, msg)
}
