package app

import (
	"context"
	"fmt"
	"html/template"

	"github.com/a-h/templ"

	"folio_app_echo/internal/models"
	"folio_app_echo/web/templates/pages"
)

const (
	msgProjectNotFound  = "Project not found."
	msgBlogPostNotFound = "Blog post not found."
	msgNoProjects       = "No projects loaded."
	msgNoBlogPosts      = "No blog posts loaded."
)

// Dispatcher renders a view state into a document
type Dispatcher struct {
	profile models.Profile
	year    int
}

// NewDispatcher creates a dispatcher for the given site owner. year is shown
// in the footer.
func NewDispatcher(profile models.Profile, year int) *Dispatcher {
	return &Dispatcher{profile: profile, year: year}
}

// Render re-renders the header, clears every container and fills the one of
// the current page. The footer is rendered on the first successful call only.
func (d *Dispatcher) Render(ctx context.Context, state *models.ViewState, store *models.ContentStore, doc *Document) error {
	if err := d.RenderHeader(ctx, state, doc); err != nil {
		return err
	}

	doc.clearContainers()

	page := state.Page.Resolve()
	html, err := toHTML(ctx, d.pageComponent(page, state, store))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	doc.Containers[page] = html
	doc.Active = page
	doc.DarkScope = state.DarkMode

	if !state.FirstPaintDone {
		footer, err := toHTML(ctx, pages.Footer(pages.FooterProps{Profile: d.profile, Year: d.year}))
		if err != nil {
			return fmt.Errorf("failed to render footer: %w", err)
		}
		doc.Footer = footer
		doc.FooterRenders++
		state.FirstPaintDone = true
	}
	return nil
}

// RenderHeader re-renders only the header mount point
func (d *Dispatcher) RenderHeader(ctx context.Context, state *models.ViewState, doc *Document) error {
	header, err := toHTML(ctx, pages.Header(pages.NewHeaderProps(d.profile, *state)))
	if err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}
	doc.Header = header
	doc.HeaderRenders++
	return nil
}

func (d *Dispatcher) pageComponent(page models.Page, state *models.ViewState, store *models.ContentStore) templ.Component {
	switch page {
	case models.PageProjects:
		if store == nil || len(store.Projects) == 0 {
			return pages.Message(pages.MessageProps{Text: msgNoProjects, Tone: pages.ToneMuted})
		}
		return pages.Projects(pages.ProjectsProps{Projects: store.Projects})

	case models.PageProjectDetail:
		project, ok := store.FindProject(state.Param)
		if !ok {
			return pages.Message(pages.MessageProps{Text: msgProjectNotFound, Tone: pages.ToneError})
		}
		return pages.ProjectDetail(pages.ProjectDetailProps{Project: project})

	case models.PageBlog:
		if store == nil || len(store.BlogPosts) == 0 {
			return pages.Message(pages.MessageProps{Text: msgNoBlogPosts, Tone: pages.ToneMuted})
		}
		return pages.Blog(pages.BlogProps{Posts: store.BlogPosts})

	case models.PageBlogDetail:
		post, ok := store.FindBlogPost(state.Param)
		if !ok {
			return pages.Message(pages.MessageProps{Text: msgBlogPostNotFound, Tone: pages.ToneError})
		}
		return pages.BlogDetail(pages.BlogDetailProps{Post: post})

	case models.PageContact:
		return pages.Contact(pages.NewContactProps(d.profile, state.Contact))

	default:
		return pages.Home(pages.NewHomeProps(d.profile, store))
	}
}

func toHTML(ctx context.Context, c templ.Component) (template.HTML, error) {
	return templ.ToGoHTML(ctx, c)
}
