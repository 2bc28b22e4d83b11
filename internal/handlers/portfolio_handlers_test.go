package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio_app_echo/internal/app"
	"folio_app_echo/internal/middleware"
	"folio_app_echo/internal/models"
	"folio_app_echo/internal/services"
	"folio_app_echo/web/templates"
)

type testServer struct {
	e       *echo.Echo
	prefs   *services.MemoryPreferenceStore
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	prefs := services.NewMemoryPreferenceStore()
	site := &app.Site{
		Title:   "Jane Doe | Portfolio",
		Profile: models.Profile{FullName: "Jane Doe", JobTitle: "Data Scientist"},
		Store: &models.ContentStore{
			Projects: []models.Project{{ID: "churn", Title: "Customer Churn"}},
			BlogPosts: []models.BlogPost{
				{ID: "mlops", Title: "Demystifying MLOps", PublicationDate: models.MustDate("2024-01-10")},
			},
		},
		Preferences: prefs,
	}

	e := echo.New()
	e.Renderer = templates.NewRenderer(templates.Default())
	e.HTTPErrorHandler = middleware.CustomErrorHandler
	RegisterRoutes(e.Group("", middleware.Sessions()), NewPortfolioHandler(app.NewSessionStore(site, 0, 0), nil))

	return &testServer{e: e, prefs: prefs}
}

func (s *testServer) do(t *testing.T, method, target string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if len(s.cookies) == 0 {
		s.cookies = rec.Result().Cookies()
	}
	return rec
}

func (s *testServer) visitorID(t *testing.T) string {
	t.Helper()
	for _, c := range s.cookies {
		if c.Name == middleware.VisitorCookie {
			return c.Value
		}
	}
	t.Fatal("no visitor cookie")
	return ""
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Jane Doe | Portfolio</title>")
	assert.Contains(t, body, `id="main-header"`)
	assert.Contains(t, body, `id="home-section" class="page-section active"`)
	assert.Contains(t, body, `class="scroll-smooth dark"`)
	assert.Contains(t, body, "All rights reserved.")
	assert.Equal(t, middleware.ColorSchemeHint, rec.Header().Get("Accept-CH"))

	names := map[string]bool{}
	for _, c := range s.cookies {
		names[c.Name] = true
	}
	assert.True(t, names[middleware.VisitorCookie])
	assert.True(t, names[middleware.ViewSessionCookie])
}

func TestNavigateRedirects(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil, nil)

	rec := s.do(t, http.MethodPost, "/navigate", url.Values{"page": {"project-detail"}, "param": {"churn"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(t, http.MethodGet, "/", nil, nil)
	body := rec.Body.String()
	assert.Contains(t, body, `id="project-detail-section" class="page-section active"`)
	assert.Contains(t, body, "Customer Churn")
	assert.Contains(t, body, "window.scrollTo(0, 0)")

	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.NotContains(t, rec.Body.String(), "window.scrollTo(0, 0)")

	s.do(t, http.MethodPost, "/navigate", url.Values{"page": {"blog-detail"}, "param": {"missing"}}, nil)
	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), "Blog post not found.")
}

func TestViewSessionBoundToVisitor(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil, nil)
	s.do(t, http.MethodPost, "/navigate", url.Values{"page": {"blog"}}, nil)

	var viewSession *http.Cookie
	for _, c := range s.cookies {
		if c.Name == middleware.ViewSessionCookie {
			viewSession = c
		}
	}
	require.NotNil(t, viewSession)

	// Same view session cookie, no visitor cookie
	other := &testServer{e: s.e, prefs: s.prefs, cookies: []*http.Cookie{viewSession}}
	rec := other.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="home-section" class="page-section active"`)

	var renewed string
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.ViewSessionCookie {
			renewed = c.Value
		}
	}
	assert.NotEmpty(t, renewed, "a fresh view session is issued")
	assert.NotEqual(t, viewSession.Value, renewed)

	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), `id="blog-section" class="page-section active"`)
}

func TestToggleThemePersists(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil, nil)

	rec := s.do(t, http.MethodPost, "/theme", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	value, ok, err := s.prefs.Get(context.Background(), s.visitorID(t), services.DarkModeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)

	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), `class="scroll-smooth"`)
}

func TestSystemColorSchemeHint(t *testing.T) {
	s := newTestServer(t)

	hint := http.Header{}
	hint.Set(middleware.ColorSchemeHint, `"light"`)
	rec := s.do(t, http.MethodGet, "/", nil, hint)
	assert.Contains(t, rec.Body.String(), `class="scroll-smooth"`)
}

func TestToggleMenu(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil, nil)

	htmx := http.Header{}
	htmx.Set("HX-Request", "true")
	rec := s.do(t, http.MethodPost, "/menu", url.Values{}, htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="mobileMenu"`)
	assert.Contains(t, body, `aria-expanded="true"`)
	assert.NotContains(t, body, "<html")

	rec = s.do(t, http.MethodPost, "/menu", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), `aria-expanded="false"`)
}

func TestSubmitContact(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/", nil, nil)
	s.do(t, http.MethodPost, "/navigate", url.Values{"page": {"contact"}}, nil)

	rec := s.do(t, http.MethodPost, "/contact", url.Values{
		"name":    {"Ann"},
		"email":   {"not-an-email"},
		"message": {"Hello there, nice work!"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := s.do(t, http.MethodGet, "/", nil, nil).Body.String()
	assert.Contains(t, body, "Please enter a valid email address.")
	assert.Contains(t, body, `value="not-an-email"`)

	s.do(t, http.MethodPost, "/contact", url.Values{
		"name":    {"Ann"},
		"email":   {"ann@example.com"},
		"message": {"Hello there, nice work!"},
	}, nil)
	body = s.do(t, http.MethodGet, "/", nil, nil).Body.String()
	assert.Contains(t, body, "Message Sent Successfully!")
	assert.Contains(t, body, `data-dismiss-after-ms="5000"`)
	assert.NotContains(t, body, "ann@example.com")
}

func TestUnknownRouteRendersErrorPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}
