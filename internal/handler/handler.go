// Package handler maps the REST surface onto the service layer. All error
// responses are {"error": message} with conventional status codes.
package handler

import (
	"github.com/labstack/echo/v4"

	"clarity/internal/errors"
)

// errorJSON renders a domain error as a flat {"error": ...} body.
func errorJSON(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// badRequest renders a validation failure.
func badRequest(c echo.Context, message string) error {
	httpErr := errors.NewHTTPError(400, message, "VALIDATION")
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
