// Package pages exposes every mount point renderer as a templ component
package pages

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"folio_app_echo/internal/contact"
	"folio_app_echo/internal/models"
	"folio_app_echo/web/templates"
)

// FeaturedCount is how many projects the home page highlights
const FeaturedCount = 3

// NavLink is one entry of the header navigation
type NavLink struct {
	Name   string
	Page   models.Page
	Active bool
}

var navLinks = []NavLink{
	{Name: "Home", Page: models.PageHome},
	{Name: "Projects", Page: models.PageProjects},
	{Name: "Blog", Page: models.PageBlog},
	{Name: "Contact", Page: models.PageContact},
}

type HeaderProps struct {
	FirstName string
	Links     []NavLink
	DarkMode  bool
	MenuOpen  bool
}

// NewHeaderProps highlights the link of the current page
func NewHeaderProps(profile models.Profile, state models.ViewState) HeaderProps {
	links := make([]NavLink, len(navLinks))
	for i, link := range navLinks {
		link.Active = link.Page == state.Page.Resolve()
		links[i] = link
	}
	return HeaderProps{
		FirstName: profile.FirstName(),
		Links:     links,
		DarkMode:  state.DarkMode,
		MenuOpen:  state.MobileMenuOpen,
	}
}

type FooterProps struct {
	Profile models.Profile
	Year    int
}

type HomeProps struct {
	Profile  models.Profile
	Featured []models.Project
	HasMore  bool
}

// NewHomeProps picks the featured projects from the store
func NewHomeProps(profile models.Profile, store *models.ContentStore) HomeProps {
	featured := store.FeaturedProjects(FeaturedCount)
	return HomeProps{
		Profile:  profile,
		Featured: featured,
		HasMore:  store != nil && len(store.Projects) > FeaturedCount,
	}
}

type ProjectsProps struct {
	Projects []models.Project
}

type ProjectDetailProps struct {
	Project models.Project
}

type BlogProps struct {
	Posts []models.BlogPost
}

type BlogDetailProps struct {
	Post models.BlogPost
}

type ContactProps struct {
	Contact      models.Contact
	Fields       contact.Fields
	Banner       models.BannerKind
	NameError    string
	EmailError   string
	MessageError string
}

// NewContactProps flattens the form state for the template
func NewContactProps(profile models.Profile, form models.ContactFormState) ContactProps {
	return ContactProps{
		Contact:      profile.Contact,
		Fields:       form.Fields,
		Banner:       form.Banner,
		NameError:    form.Result.Message(contact.FieldName),
		EmailError:   form.Result.Message(contact.FieldEmail),
		MessageError: form.Result.Message(contact.FieldMessage),
	}
}

// Tone selects the styling of a terminal message
type Tone string

const (
	ToneMuted Tone = "muted"
	ToneError Tone = "error"
)

type MessageProps struct {
	Text string
	Tone Tone
}

func Header(props HeaderProps) templ.Component { return fragment("header", props) }

func Footer(props FooterProps) templ.Component { return fragment("footer", props) }

func Home(props HomeProps) templ.Component { return fragment("home", props) }

func Projects(props ProjectsProps) templ.Component { return fragment("projects", props) }

func ProjectDetail(props ProjectDetailProps) templ.Component {
	return fragment("project-detail", props)
}

func Blog(props BlogProps) templ.Component { return fragment("blog", props) }

func BlogDetail(props BlogDetailProps) templ.Component { return fragment("blog-detail", props) }

func Contact(props ContactProps) templ.Component { return fragment("contact", props) }

// Message renders a terminal state such as "Project not found."
func Message(props MessageProps) templ.Component { return fragment("message", props) }

func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.Default().ExecuteFragment(w, name, data)
	})
}

// Container is one rendered page container of the index document
type Container struct {
	ID     models.Page
	Active bool
	HTML   template.HTML
}

// IndexData is the data of the index document
type IndexData struct {
	Title       string
	DarkMode    bool
	Header      template.HTML
	Footer      template.HTML
	Containers  []Container
	ScrollReset bool
}

// ErrorData is the data of the error document
type ErrorData struct {
	Title        string
	ErrorTitle   string
	ErrorMessage string
	DarkMode     bool
}
