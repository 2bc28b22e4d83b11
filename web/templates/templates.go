// Package templates holds the HTML templates of the site. Fragment templates
// render a single mount point; document templates render a whole page on top
// of the base layout.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed layouts/*.html partials/*.html fragments/*.html documents/*.html
var files embed.FS

// Set is a parsed template collection
type Set struct {
	fragments *template.Template
	documents map[string]*template.Template
}

// Parse parses every template in fsys. Each document gets its own clone of the
// layout so that documents may define the same blocks.
func Parse(fsys fs.FS) (*Set, error) {
	base, err := template.New("").Funcs(Funcs()).ParseFS(fsys, "layouts/*.html", "partials/*.html", "fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts, partials and fragments: %w", err)
	}

	docs, err := fs.Glob(fsys, "documents/*.html")
	if err != nil {
		return nil, err
	}

	documents := make(map[string]*template.Template, len(docs))
	for _, doc := range docs {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", doc, err)
		}
		if _, err := tmpl.ParseFS(fsys, doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", doc, err)
		}
		documents[path.Base(doc)] = tmpl
	}

	return &Set{fragments: base, documents: documents}, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the set parsed from the embedded files
func Default() *Set {
	defaultOnce.Do(func() {
		set, err := Parse(files)
		if err != nil {
			panic(err)
		}
		defaultSet = set
	})
	return defaultSet
}

// ExecuteFragment renders one named fragment, e.g. "header"
func (s *Set) ExecuteFragment(w io.Writer, name string, data any) error {
	if s.fragments.Lookup(name) == nil {
		return fmt.Errorf("fragment %q not found", name)
	}
	return s.fragments.ExecuteTemplate(w, name, data)
}

// ExecuteDocument renders a full document such as "index.html"
func (s *Set) ExecuteDocument(w io.Writer, name string, data any) error {
	tmpl, ok := s.documents[name]
	if !ok {
		return fmt.Errorf("document %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// HasDocument reports whether a document template exists
func (s *Set) HasDocument(name string) bool {
	_, ok := s.documents[name]
	return ok
}

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"icon":     Icon,
		"imageSrc": ImageSrc,
		"dict":     dict,
		"inc":      func(i int) int { return i + 1 },
		"trusted":  func(s string) template.HTML { return template.HTML(s) },
	}
}

// Icon references a symbol of the inline icon sprite
func Icon(name, classes string) template.HTML {
	return template.HTML(fmt.Sprintf(`<svg class="%s"><use xlink:href="#icon-%s"></use></svg>`,
		template.HTMLEscapeString(classes), template.HTMLEscapeString(name)))
}

// ImageSrc resolves a bare file name into the images directory. Absolute URLs
// and paths already under images/ are kept.
func ImageSrc(p string) string {
	if strings.HasPrefix(p, "http") || strings.HasPrefix(p, "images/") {
		return p
	}
	return "images/" + p
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs, got %d arguments", len(kv))
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}
