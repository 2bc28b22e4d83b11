package models

import (
	"time"

	"folio_app_echo/internal/contact"
)

// Page identifies one page container
type Page string

const (
	PageHome          Page = "home"
	PageProjects      Page = "projects"
	PageProjectDetail Page = "project-detail"
	PageBlog          Page = "blog"
	PageBlogDetail    Page = "blog-detail"
	PageContact       Page = "contact"
)

// DefaultPage is shown at boot and whenever the requested page is unknown
const DefaultPage = PageHome

// Pages lists every page container in document order
var Pages = []Page{PageHome, PageProjects, PageProjectDetail, PageBlog, PageBlogDetail, PageContact}

// Known reports whether p names one of the page containers
func (p Page) Known() bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

// IsDetail reports whether p is keyed by a record id
// Resolve returns p, or DefaultPage when p is not a known page
func (p Page) Resolve() Page {
	if p.Known() {
		return p
	}
	return DefaultPage
}

func (p Page) IsDetail() bool {
	return p == PageProjectDetail || p == PageBlogDetail
}

// BannerKind is the summary banner shown above the contact form
type BannerKind string

const (
	BannerNone    BannerKind = ""
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// ContactFormState is what the contact page shows for the current session
type ContactFormState struct {
	Fields    contact.Fields
	Result    contact.Result
	Banner    BannerKind
	DismissAt time.Time
}

// ViewState is everything a render reads besides the content store.
// Param is only meaningful for detail pages.
type ViewState struct {
	Page           Page
	Param          string
	DarkMode       bool
	MobileMenuOpen bool
	FirstPaintDone bool
	Contact        ContactFormState
}

// NewViewState returns the boot state with the given theme
func NewViewState(darkMode bool) ViewState {
	return ViewState{Page: DefaultPage, DarkMode: darkMode}
}
