package models

// ContentStore holds everything loaded at boot. It is built once by the
// loader and only read afterwards.
type ContentStore struct {
	Projects  []Project
	BlogPosts []BlogPost
}

// FindProject looks a project up by id
func (s *ContentStore) FindProject(id string) (Project, bool) {
	if s == nil {
		return Project{}, false
	}
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// FindBlogPost looks a blog post up by id
func (s *ContentStore) FindBlogPost(id string) (BlogPost, bool) {
	if s == nil {
		return BlogPost{}, false
	}
	for _, p := range s.BlogPosts {
		if p.ID == id {
			return p, true
		}
	}
	return BlogPost{}, false
}

// FeaturedProjects returns the first n projects in load order
func (s *ContentStore) FeaturedProjects(n int) []Project {
	if s == nil || n <= 0 {
		return nil
	}
	if len(s.Projects) <= n {
		return s.Projects
	}
	return s.Projects[:n]
}
