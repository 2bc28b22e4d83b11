package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio_app_echo/internal/models"
)

func TestSessionStoreOpen(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	sessions := NewSessionStore(newTestSite(newRecordingPreferences(), clock), time.Minute, 0)

	first, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	require.NoError(t, first.Navigate(ctx, models.PageBlog, ""))

	again, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, models.PageBlog, again.State().Page)

	other, err := sessions.Open(ctx, "s2", visitor, nil)
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, models.PageHome, other.State().Page)
	assert.Equal(t, 2, sessions.size())
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	sessions := NewSessionStore(newTestSite(nil, clock), time.Minute, 0)

	first, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	_, err = sessions.Open(ctx, "s2", visitor, nil)
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	_, ok := sessions.lookup("s2")
	require.True(t, ok)

	clock.Advance(45 * time.Second)
	_, ok = sessions.lookup("s1")
	assert.False(t, ok, "idle session expired")

	renewed, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	assert.NotSame(t, first, renewed)

	clock.Advance(2 * time.Minute)
	_, err = sessions.Open(ctx, "s3", visitor, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.size(), "expired sessions are swept")
}

func TestSessionStoreConcurrentOpen(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(newTestSite(newRecordingPreferences(), nil), time.Minute, 0)

	var wg sync.WaitGroup
	ctrls := make([]*Controller, 8)
	for i := range ctrls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctrl, err := sessions.Open(ctx, "shared", visitor, nil)
			if err == nil {
				ctrls[i] = ctrl
			}
		}()
	}
	wg.Wait()

	for _, ctrl := range ctrls {
		require.NotNil(t, ctrl)
		assert.Same(t, ctrls[0], ctrl)
	}
	assert.Equal(t, 1, sessions.size())
}

func TestSessionStoreEvictsLeastRecentlySeen(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	sessions := NewSessionStore(newTestSite(nil, clock), time.Hour, 3)

	for _, id := range []string{"s1", "s2", "s3"} {
		_, err := sessions.Open(ctx, id, visitor, nil)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	// s1 becomes the most recent, leaving s2 as the oldest
	_, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	clock.Advance(time.Second)

	for i := 0; i < 50; i++ {
		_, err := sessions.Open(ctx, fmt.Sprintf("burst-%d", i), fmt.Sprintf("visitor-%d", i), nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, sessions.size(), 3)
		if i == 0 {
			_, ok := sessions.lookup("s2")
			assert.False(t, ok, "oldest session evicted first")
			_, ok = sessions.lookup("s1")
			assert.True(t, ok)
		}
		clock.Advance(time.Millisecond)
	}
	assert.Equal(t, 3, sessions.size())
}

func TestSessionStoreRejectsForeignVisitor(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(newTestSite(newRecordingPreferences(), newFakeClock()), time.Minute, 0)

	owned, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)

	_, err = sessions.Open(ctx, "s1", "someone-else", nil)
	assert.ErrorIs(t, err, ErrForeignSession)

	again, err := sessions.Open(ctx, "s1", visitor, nil)
	require.NoError(t, err)
	assert.Same(t, owned, again)
}
