package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"folio_app_echo/web/templates/pages"
)

// CustomErrorHandler renders the error document for every failed request
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code

		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusMethodNotAllowed:
			errorTitle = "Method Not Allowed"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "This page cannot be used that way."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		default:
			if code < http.StatusInternalServerError {
				errorTitle = http.StatusText(code)
			}
			if errorMessage == "" || code >= http.StatusInternalServerError {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		errorMessage = "Something went wrong. Please try again later."
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	data := pages.ErrorData{
		Title:        errorTitle,
		ErrorTitle:   errorTitle,
		ErrorMessage: errorMessage,
	}
	if dark := SystemDark(c); dark != nil {
		data.DarkMode = *dark
	} else {
		data.DarkMode = true
	}

	var renderErr error
	if c.Request().Method == http.MethodHead {
		renderErr = c.NoContent(code)
	} else {
		renderErr = c.Render(code, "error.html", data)
	}
	if renderErr != nil {
		// Fallback to plain text if template fails
		c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
		_ = c.String(code, errorMessage)
	}
}
