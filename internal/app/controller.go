// Package app holds the per-session view logic: the controller that owns a
// view state, the dispatcher that renders it and the session store.
package app

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"folio_app_echo/internal/contact"
	"folio_app_echo/internal/models"
	"folio_app_echo/internal/services"
	"folio_app_echo/web/templates/pages"
)

// SuccessBannerTTL is how long the contact success banner stays visible
const SuccessBannerTTL = 5 * time.Second

// Site is what every session shares
type Site struct {
	Title       string
	Profile     models.Profile
	Store       *models.ContentStore
	Preferences services.PreferenceStore
	Logger      *zap.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

func (s *Site) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Site) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Controller owns the view state and document of one view session. All
// methods are safe for concurrent use; commands are applied one at a time.
type Controller struct {
	site       *Site
	visitorID  string
	dispatcher *Dispatcher
	log        *zap.Logger

	mu    sync.Mutex
	state models.ViewState
	doc   *Document
}

// NewController boots a view session for visitorID and performs the first
// render. systemDark is the system color scheme hint, nil when unknown.
func NewController(ctx context.Context, site *Site, visitorID string, systemDark *bool) (*Controller, error) {
	c := &Controller{
		site:       site,
		visitorID:  visitorID,
		dispatcher: NewDispatcher(site.Profile, site.now().Year()),
		log:        site.logger().With(zap.String("visitor_id", visitorID)),
		doc:        NewDocument(),
	}

	c.state = models.NewViewState(c.bootTheme(ctx, systemDark))
	if err := c.render(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// bootTheme resolves the initial theme: a stored preference wins, then the
// system hint, then dark
func (c *Controller) bootTheme(ctx context.Context, systemDark *bool) bool {
	value, ok, err := c.storedTheme(ctx)
	if err != nil {
		c.log.Warn("failed to read theme preference", zap.Error(err))
	}
	if ok {
		return value != "false"
	}
	if systemDark != nil {
		return *systemDark
	}
	return true
}

func (c *Controller) storedTheme(ctx context.Context) (string, bool, error) {
	if c.site.Preferences == nil {
		return "", false, nil
	}
	return c.site.Preferences.Get(ctx, c.visitorID, services.DarkModeKey)
}

// Handle applies one command and re-renders what it affects
func (c *Controller) Handle(ctx context.Context, cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd := cmd.(type) {
	case Navigate:
		c.state.Page = cmd.Page
		c.state.Param = ""
		if cmd.Page.IsDetail() {
			c.state.Param = cmd.Param
		}
		c.state.MobileMenuOpen = false
		c.state.Contact = models.ContactFormState{}
		c.doc.ScrollReset = true
		return c.render(ctx)

	case ToggleDarkMode:
		c.state.DarkMode = !c.state.DarkMode
		c.persistTheme(ctx)
		return c.render(ctx)

	case ToggleMobileMenu:
		c.state.MobileMenuOpen = !c.state.MobileMenuOpen
		return c.dispatcher.RenderHeader(ctx, &c.state, c.doc)

	case SubmitContactForm:
		c.submitContact(cmd.Fields)
		return c.render(ctx)

	case SystemThemeChanged:
		if c.state.DarkMode == cmd.Dark {
			return nil
		}
		_, stored, err := c.storedTheme(ctx)
		if err != nil {
			c.log.Warn("failed to read theme preference", zap.Error(err))
			return nil
		}
		if stored {
			return nil
		}
		c.state.DarkMode = cmd.Dark
		return c.render(ctx)

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

func (c *Controller) Navigate(ctx context.Context, page models.Page, param string) error {
	return c.Handle(ctx, Navigate{Page: page, Param: param})
}

func (c *Controller) ToggleDarkMode(ctx context.Context) error {
	return c.Handle(ctx, ToggleDarkMode{})
}

func (c *Controller) ToggleMobileMenu(ctx context.Context) error {
	return c.Handle(ctx, ToggleMobileMenu{})
}

// SubmitContactForm validates fields and returns the result shown on the page
func (c *Controller) SubmitContactForm(ctx context.Context, fields contact.Fields) (contact.Result, error) {
	if err := c.Handle(ctx, SubmitContactForm{Fields: fields}); err != nil {
		return contact.Result{}, err
	}
	return c.State().Contact.Result, nil
}

// ApplySystemTheme follows the system color scheme unless the visitor has
// chosen a theme
func (c *Controller) ApplySystemTheme(ctx context.Context, dark bool) error {
	return c.Handle(ctx, SystemThemeChanged{Dark: dark})
}

// Tick hides the success banner once its deadline has passed
func (c *Controller) Tick(ctx context.Context, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	form := &c.state.Contact
	if form.Banner != models.BannerSuccess || form.DismissAt.IsZero() || now.Before(form.DismissAt) {
		return nil
	}
	form.Banner = models.BannerNone
	form.DismissAt = time.Time{}
	return c.render(ctx)
}

// State returns a copy of the current view state
func (c *Controller) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IndexData snapshots the document for serialisation and consumes the
// pending scroll reset
func (c *Controller) IndexData() pages.IndexData {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := c.doc.IndexData(c.site.Title)
	c.doc.ScrollReset = false
	return data
}

// Header returns the current header mount point
func (c *Controller) Header() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.doc.Header)
}

// Document returns a copy of the document
func (c *Controller) Document() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc := *c.doc
	doc.Containers = make(map[models.Page]template.HTML, len(c.doc.Containers))
	for page, html := range c.doc.Containers {
		doc.Containers[page] = html
	}
	return doc
}

func (c *Controller) submitContact(fields contact.Fields) {
	result := contact.Validate(fields)
	if !result.Valid() {
		c.state.Contact = models.ContactFormState{
			Fields: fields,
			Result: result,
			Banner: models.BannerError,
		}
		return
	}
	c.log.Info("contact form accepted", zap.Int("message_length", len(fields.Message)))
	c.state.Contact = models.ContactFormState{
		Result:    result,
		Banner:    models.BannerSuccess,
		DismissAt: c.site.now().Add(SuccessBannerTTL),
	}
}

// persistTheme writes the flag; a failed write does not stop the render
func (c *Controller) persistTheme(ctx context.Context) {
	if c.site.Preferences == nil {
		return
	}
	value := strconv.FormatBool(c.state.DarkMode)
	if err := c.site.Preferences.Set(ctx, c.visitorID, services.DarkModeKey, value); err != nil {
		c.log.Error("failed to persist theme preference", zap.Error(err))
	}
}

func (c *Controller) render(ctx context.Context) error {
	return c.dispatcher.Render(ctx, &c.state, c.site.Store, c.doc)
}
