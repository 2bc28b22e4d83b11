package app

import (
	"html/template"

	"folio_app_echo/internal/models"
	"folio_app_echo/web/templates/pages"
)

// Document is the set of mount points of one view session. The dispatcher
// writes into it; handlers serialise it.
type Document struct {
	Header     template.HTML
	Footer     template.HTML
	Containers map[models.Page]template.HTML
	Active     models.Page

	// DarkScope is the "dark" style-scope marker on the root element
	DarkScope bool
	// ScrollReset asks the next serialisation to scroll to the top
	ScrollReset bool

	HeaderRenders int
	FooterRenders int
}

// NewDocument returns a document with one empty container per page
func NewDocument() *Document {
	containers := make(map[models.Page]template.HTML, len(models.Pages))
	for _, page := range models.Pages {
		containers[page] = ""
	}
	return &Document{Containers: containers, Active: models.DefaultPage}
}

func (d *Document) clearContainers() {
	for page := range d.Containers {
		d.Containers[page] = ""
	}
}

// IndexData copies the document into the index template data
func (d *Document) IndexData(title string) pages.IndexData {
	containers := make([]pages.Container, 0, len(models.Pages))
	for _, page := range models.Pages {
		containers = append(containers, pages.Container{
			ID:     page,
			Active: page == d.Active,
			HTML:   d.Containers[page],
		})
	}
	return pages.IndexData{
		Title:       title,
		DarkMode:    d.DarkScope,
		Header:      d.Header,
		Footer:      d.Footer,
		Containers:  containers,
		ScrollReset: d.ScrollReset,
	}
}
