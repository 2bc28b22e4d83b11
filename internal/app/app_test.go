package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"folio_app_echo/internal/models"
	"folio_app_echo/internal/services"
)

var testProfile = models.Profile{
	FullName: "Jane Doe",
	JobTitle: "Data Scientist",
	Summary:  "Builds models.",
	Contact: models.Contact{
		Email:  "jane@example.com",
		GitHub: "https://github.com/jane",
	},
}

func testStore() *models.ContentStore {
	return &models.ContentStore{
		Projects: []models.Project{
			{ID: "churn", Title: "Customer Churn", Overview: "Predicts churn.", Thumbnail: "churn.png"},
			{ID: "iot", Title: "Predictive Maintenance", Overview: "Sensors.", Thumbnail: "iot.png"},
		},
		BlogPosts: []models.BlogPost{
			{ID: "mlops", Title: "Demystifying MLOps", PublicationDate: models.MustDate("2024-01-10"), Content: "<p>pipelines</p>", Author: "Jane Doe"},
		},
	}
}

// recordingPreferences counts writes on top of the memory store
type recordingPreferences struct {
	*services.MemoryPreferenceStore

	mu     sync.Mutex
	writes []string
	getErr error
	setErr error
}

func newRecordingPreferences() *recordingPreferences {
	return &recordingPreferences{MemoryPreferenceStore: services.NewMemoryPreferenceStore()}
}

func (p *recordingPreferences) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	if p.getErr != nil {
		return "", false, p.getErr
	}
	return p.MemoryPreferenceStore.Get(ctx, visitorID, key)
}

func (p *recordingPreferences) Set(ctx context.Context, visitorID, key, value string) error {
	p.mu.Lock()
	p.writes = append(p.writes, value)
	p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	return p.MemoryPreferenceStore.Set(ctx, visitorID, key, value)
}

func (p *recordingPreferences) Writes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.writes...)
}

var errStorageDown = errors.New("storage unavailable")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestSite(prefs services.PreferenceStore, clock *fakeClock) *Site {
	site := &Site{
		Title:       "Jane Doe | Portfolio",
		Profile:     testProfile,
		Store:       testStore(),
		Preferences: prefs,
	}
	if clock != nil {
		site.Now = clock.Now
	}
	return site
}

func boolPtr(b bool) *bool { return &b }
