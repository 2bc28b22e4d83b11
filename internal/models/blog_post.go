package models

// BlogPost is one article, loaded from blogs/<id>.json
type BlogPost struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	PublicationDate Date     `json:"publicationDate"`
	Snippet         string   `json:"snippet"`
	Content         string   `json:"content"`
	ContentMarkdown string   `json:"contentMarkdown,omitempty"`
	Tags            []string `json:"tags"`
	Author          string   `json:"author,omitempty"`
}

// PreviewTags returns at most the first three tags, as shown on list cards
func (p BlogPost) PreviewTags() []string {
	if len(p.Tags) > 3 {
		return p.Tags[:3]
	}
	return p.Tags
}
