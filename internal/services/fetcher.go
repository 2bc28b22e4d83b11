package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// FetchErrorKind classifies why one content resource could not be loaded
type FetchErrorKind string

const (
	FetchNetwork FetchErrorKind = "network"
	FetchStatus  FetchErrorKind = "status"
	FetchPayload FetchErrorKind = "payload"
)

// FetchError is the failure of a single resource. The loader recovers from it
// by leaving the resource out.
type FetchError struct {
	Path       string
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchStatus {
		return fmt.Sprintf("fetch %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher returns the raw bytes of a content resource such as "projects/x.json"
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPFetcher reads resources relative to a base URL
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for baseURL. The client has no timeout:
// a hung request holds its collection until it settles.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", f.baseURL, strings.TrimLeft(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Path: path, Kind: FetchNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Path: path, Kind: FetchNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Path: path, Kind: FetchStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Path: path, Kind: FetchNetwork, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}

// DirFetcher reads resources from a filesystem, e.g. os.DirFS("web/content")
type DirFetcher struct {
	fsys fs.FS
}

func NewDirFetcher(fsys fs.FS) *DirFetcher {
	return &DirFetcher{fsys: fsys}
}

func (f *DirFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Path: path, Kind: FetchNetwork, Err: err}
	}
	data, err := fs.ReadFile(f.fsys, strings.TrimLeft(path, "/"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{Path: path, Kind: FetchStatus, StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, &FetchError{Path: path, Kind: FetchNetwork, Err: err}
	}
	return data, nil
}
