package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON = "application/json"

	// maxStrictBodyBytes matches the server's global body limit. Draft
	// payloads run up to the 10MB content cap, plus the JSON envelope and
	// string escaping around it.
	maxStrictBodyBytes int64 = 12 << 20
)

// bindStrictJSON decodes a JSON body into dst, rejecting wrong content
// types, unknown fields, and trailing data.
func bindStrictJSON(c echo.Context, dst interface{}) error {
	contentType := strings.ToLower(c.Request().Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, maxStrictBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}
	return nil
}
