package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"folio_app_echo/internal/models"
)

// ContentLoader builds the content store from one JSON resource per id
type ContentLoader struct {
	fetcher  Fetcher
	logger   *zap.Logger
	markdown goldmark.Markdown
}

// NewContentLoader creates a loader reading through fetcher
func NewContentLoader(fetcher Fetcher, logger *zap.Logger) *ContentLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentLoader{
		fetcher:  fetcher,
		logger:   logger,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// loadResult is the outcome of one fetch; exactly one of the fields is set
type loadResult[T any] struct {
	record T
	err    error
}

// LoadAll fetches every project and blog post concurrently and returns once
// all fetches have settled. Failed resources are logged and left out, so the
// returned store may be partially (or entirely) empty but is never nil.
func (l *ContentLoader) LoadAll(ctx context.Context, projectIDs, blogIDs []string, defaultAuthor string) *models.ContentStore {
	projectIDs = l.dedupeIDs("project", projectIDs)
	blogIDs = l.dedupeIDs("blog", blogIDs)

	projectResults := make([]loadResult[models.Project], len(projectIDs))
	blogResults := make([]loadResult[models.BlogPost], len(blogIDs))

	// No limit: the fan-out is fixed by the two id lists
	var g errgroup.Group
	for i, id := range projectIDs {
		g.Go(func() error {
			p, err := l.fetchProject(ctx, id)
			projectResults[i] = loadResult[models.Project]{record: p, err: err}
			return nil
		})
	}
	for i, id := range blogIDs {
		g.Go(func() error {
			p, err := l.fetchBlogPost(ctx, id)
			blogResults[i] = loadResult[models.BlogPost]{record: p, err: err}
			return nil
		})
	}
	_ = g.Wait()

	store := &models.ContentStore{
		Projects:  make([]models.Project, 0, len(projectIDs)),
		BlogPosts: make([]models.BlogPost, 0, len(blogIDs)),
	}
	for _, r := range projectResults {
		if r.err != nil {
			l.logFetchError(r.err)
			continue
		}
		store.Projects = append(store.Projects, r.record)
	}

	posts := make([]models.BlogPost, 0, len(blogIDs))
	for _, r := range blogResults {
		if r.err != nil {
			l.logFetchError(r.err)
			continue
		}
		posts = append(posts, r.record)
	}
	SortBlogPosts(posts)
	store.BlogPosts = applyDefaultAuthor(posts, defaultAuthor)

	l.logger.Info("content loaded",
		zap.Int("projects", len(store.Projects)),
		zap.Int("projects_requested", len(projectIDs)),
		zap.Int("blog_posts", len(store.BlogPosts)),
		zap.Int("blog_posts_requested", len(blogIDs)),
	)
	return store
}

func (l *ContentLoader) fetchProject(ctx context.Context, id string) (models.Project, error) {
	path := fmt.Sprintf("projects/%s.json", id)
	data, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return models.Project{}, asFetchError(path, err)
	}

	var project models.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return models.Project{}, &FetchError{Path: path, Kind: FetchPayload, Err: err}
	}
	// The requested id wins so that every id yields at most one record
	if project.ID != "" && project.ID != id {
		l.logger.Warn("project id differs from file name", zap.String("path", path), zap.String("id", project.ID))
	}
	project.ID = id
	return project, nil
}

func (l *ContentLoader) fetchBlogPost(ctx context.Context, id string) (models.BlogPost, error) {
	path := fmt.Sprintf("blogs/%s.json", id)
	data, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return models.BlogPost{}, asFetchError(path, err)
	}

	var post models.BlogPost
	if err := json.Unmarshal(data, &post); err != nil {
		return models.BlogPost{}, &FetchError{Path: path, Kind: FetchPayload, Err: err}
	}
	if post.PublicationDate.IsZero() {
		return models.BlogPost{}, &FetchError{Path: path, Kind: FetchPayload, Err: errors.New("missing publicationDate")}
	}
	if post.ID != "" && post.ID != id {
		l.logger.Warn("blog post id differs from file name", zap.String("path", path), zap.String("id", post.ID))
	}
	post.ID = id

	if post.Content == "" && post.ContentMarkdown != "" {
		var buf bytes.Buffer
		if err := l.markdown.Convert([]byte(post.ContentMarkdown), &buf); err != nil {
			return models.BlogPost{}, &FetchError{Path: path, Kind: FetchPayload, Err: fmt.Errorf("failed to convert markdown: %w", err)}
		}
		post.Content = buf.String()
	}
	return post, nil
}

// dedupeIDs keeps the first occurrence of every id
func (l *ContentLoader) dedupeIDs(kind string, ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			l.logger.Warn("duplicate content id ignored", zap.String("kind", kind), zap.String("id", id))
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (l *ContentLoader) logFetchError(err error) {
	var fe *FetchError
	if errors.As(err, &fe) {
		l.logger.Warn("content resource skipped",
			zap.String("path", fe.Path),
			zap.String("kind", string(fe.Kind)),
			zap.Error(err),
		)
		return
	}
	l.logger.Warn("content resource skipped", zap.Error(err))
}

func asFetchError(path string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Path: path, Kind: FetchNetwork, Err: err}
}

// SortBlogPosts orders posts newest first. Posts sharing a date keep their
// relative order.
func SortBlogPosts(posts []models.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublicationDate.After(posts[j].PublicationDate.Time)
	})
}

// applyDefaultAuthor returns a copy of posts where every post without an
// author is attributed to defaultAuthor
func applyDefaultAuthor(posts []models.BlogPost, defaultAuthor string) []models.BlogPost {
	out := make([]models.BlogPost, len(posts))
	for i, post := range posts {
		if post.Author == "" {
			post.Author = defaultAuthor
		}
		out[i] = post
	}
	return out
}
