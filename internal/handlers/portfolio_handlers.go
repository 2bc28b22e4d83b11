package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"folio_app_echo/internal/app"
	"folio_app_echo/internal/contact"
	"folio_app_echo/internal/middleware"
	"folio_app_echo/internal/models"
)

// PortfolioHandler turns requests into controller commands. Every POST
// answers with a redirect to the index so that reloading never resubmits.
type PortfolioHandler struct {
	sessions *app.SessionStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewPortfolioHandler(sessions *app.SessionStore, logger *zap.Logger) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{sessions: sessions, logger: logger, now: time.Now}
}

// Index serialises the current document of the view session
func (h *PortfolioHandler) Index(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if dark := middleware.SystemDark(c); dark != nil {
		if err := ctrl.ApplySystemTheme(ctx, *dark); err != nil {
			return h.renderError(err)
		}
	}
	if err := ctrl.Tick(ctx, h.now()); err != nil {
		return h.renderError(err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Render(http.StatusOK, "index.html", ctrl.IndexData())
}

// Navigate handles the nav links and every in-page navigation button
func (h *PortfolioHandler) Navigate(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	page := models.Page(c.FormValue("page"))
	if err := ctrl.Navigate(c.Request().Context(), page, c.FormValue("param")); err != nil {
		return h.renderError(err)
	}
	return redirectHome(c)
}

// ToggleTheme flips dark mode
func (h *PortfolioHandler) ToggleTheme(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.ToggleDarkMode(c.Request().Context()); err != nil {
		return h.renderError(err)
	}
	return redirectHome(c)
}

// ToggleMenu opens or closes the mobile menu. HTMX requests get the header
// fragment back instead of a redirect.
func (h *PortfolioHandler) ToggleMenu(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.ToggleMobileMenu(c.Request().Context()); err != nil {
		return h.renderError(err)
	}
	if c.Request().Header.Get("HX-Request") == "true" {
		return c.HTML(http.StatusOK, ctrl.Header())
	}
	return redirectHome(c)
}

// SubmitContact validates the contact form. The outcome is shown on the
// contact page; nothing is sent.
func (h *PortfolioHandler) SubmitContact(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}

	var fields contact.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	result, err := ctrl.SubmitContactForm(c.Request().Context(), fields)
	if err != nil {
		return h.renderError(err)
	}
	h.logger.Debug("contact form submitted",
		zap.String("view_session", middleware.ViewSessionID(c)),
		zap.Bool("valid", result.Valid()),
	)
	return redirectHome(c)
}

func (h *PortfolioHandler) controller(c echo.Context) (*app.Controller, error) {
	ctx := c.Request().Context()
	visitorID := middleware.VisitorID(c)
	ctrl, err := h.sessions.Open(ctx, middleware.ViewSessionID(c), visitorID, middleware.SystemDark(c))
	if errors.Is(err, app.ErrForeignSession) {
		h.logger.Warn("view session presented by another visitor, issuing a new one",
			zap.String("visitor_id", visitorID))
		ctrl, err = h.sessions.Open(ctx, middleware.RenewViewSession(c), visitorID, middleware.SystemDark(c))
	}
	if err != nil {
		return nil, h.renderError(err)
	}
	return ctrl, nil
}

func (h *PortfolioHandler) renderError(err error) error {
	h.logger.Error("render failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterRoutes mounts the portfolio routes on g. The group must use
// middleware.Sessions.
func RegisterRoutes(g *echo.Group, h *PortfolioHandler) {
	g.GET("/", h.Index)
	g.POST("/navigate", h.Navigate)
	g.POST("/theme", h.ToggleTheme)
	g.POST("/menu", h.ToggleMenu)
	g.POST("/contact", h.SubmitContact)
}
