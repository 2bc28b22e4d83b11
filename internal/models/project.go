package models

// Project is one portfolio project, loaded from projects/<id>.json
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	Goals        []string `json:"goals"`
	Technologies []string `json:"technologies"`
	Challenges   string   `json:"challenges"`
	Solutions    string   `json:"solutions"`
	Thumbnail    string   `json:"thumbnail"`
	Screenshots  []string `json:"screenshots"`
	GithubLink   string   `json:"githubLink,omitempty"`
	LiveDemoLink string   `json:"liveDemoLink,omitempty"`
}

// HasLinks reports whether the project has any outbound link
func (p Project) HasLinks() bool {
	return p.GithubLink != "" || p.LiveDemoLink != ""
}
