package templates

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Renderer lets echo render document templates through c.Render
type Renderer struct {
	set *Set
}

// NewRenderer wraps a parsed set for echo
func NewRenderer(set *Set) *Renderer {
	return &Renderer{set: set}
}

// Render renders a template document
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if !r.set.HasDocument(name) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return r.set.ExecuteDocument(w, name, data)
}
