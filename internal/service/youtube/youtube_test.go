package youtube

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/config"
)

type fakeAPI struct {
	byKeyword map[string][]SeedVideo
	failing   map[string]bool
}

func (f *fakeAPI) Search(ctx context.Context, keyword string, since time.Time, max int64) ([]SeedVideo, error) {
	if f.failing[keyword] {
		return nil, errors.New("quota exceeded")
	}
	return f.byKeyword[keyword], nil
}

func (f *fakeAPI) Details(ctx context.Context, videoID string) (*SeedVideo, error) {
	for _, videos := range f.byKeyword {
		for _, v := range videos {
			if v.ID == videoID {
				detailed := v
				return &detailed, nil
			}
		}
	}
	return nil, errors.New("video not found")
}

type fakeChecker struct {
	existing map[string]bool
}

func (f *fakeChecker) SeedExists(videoID string) (bool, error) {
	return f.existing[videoID], nil
}

func seed(id string) SeedVideo {
	return SeedVideo{
		ID:          id,
		Title:       "title " + id,
		Description: strings.Repeat("d", 150),
		Channel:     "channel",
	}
}

func testConfig(keywords ...string) *config.YouTubeConfig {
	return &config.YouTubeConfig{
		SearchKeywords: keywords,
		MaxPerKeyword:  2,
		MaxVideos:      2,
		LookbackDays:   7,
		MinDescription: 100,
	}
}

func TestFetchFreshSkipsExistingSeeds(t *testing.T) {
	api := &fakeAPI{byKeyword: map[string][]SeedVideo{
		"재테크": {seed("v1"), seed("v2")},
		"절세":  {seed("v3")},
	}}
	checker := &fakeChecker{existing: map[string]bool{"v1": true}}
	fetcher := NewFetcher(api, testConfig("재테크", "절세"), zap.NewNop())

	videos, err := fetcher.FetchFresh(context.Background(), checker)

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v2", videos[0].ID)
	assert.Equal(t, "v3", videos[1].ID)
}

func TestFetchFreshIsStableAgainstUnchangedStore(t *testing.T) {
	// once v1 is referenced by a draft it must never be selected again
	api := &fakeAPI{byKeyword: map[string][]SeedVideo{
		"재테크": {seed("v1"), seed("v2")},
	}}
	checker := &fakeChecker{existing: map[string]bool{"v1": true, "v2": true}}
	fetcher := NewFetcher(api, testConfig("재테크"), zap.NewNop())

	for i := 0; i < 2; i++ {
		videos, err := fetcher.FetchFresh(context.Background(), checker)
		require.NoError(t, err)
		assert.Empty(t, videos)
	}
}

func TestFetchFreshDeduplicatesAcrossKeywords(t *testing.T) {
	api := &fakeAPI{byKeyword: map[string][]SeedVideo{
		"재테크": {seed("dup")},
		"절세":  {seed("dup"), seed("v9")},
	}}
	fetcher := NewFetcher(api, testConfig("재테크", "절세"), zap.NewNop())

	videos, err := fetcher.FetchFresh(context.Background(), &fakeChecker{})

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "dup", videos[0].ID)
	assert.Equal(t, "v9", videos[1].ID)
}

func TestFetchFreshSkipsShortDescriptions(t *testing.T) {
	short := seed("short")
	short.Description = "too short"
	api := &fakeAPI{byKeyword: map[string][]SeedVideo{
		"재테크": {short, seed("ok")},
	}}
	fetcher := NewFetcher(api, testConfig("재테크"), zap.NewNop())

	videos, err := fetcher.FetchFresh(context.Background(), &fakeChecker{})

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "ok", videos[0].ID)
}

func TestFetchFreshContinuesPastFailingKeyword(t *testing.T) {
	api := &fakeAPI{
		byKeyword: map[string][]SeedVideo{"절세": {seed("v5")}},
		failing:   map[string]bool{"재테크": true},
	}
	fetcher := NewFetcher(api, testConfig("재테크", "절세"), zap.NewNop())

	videos, err := fetcher.FetchFresh(context.Background(), &fakeChecker{})

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "v5", videos[0].ID)
}

func TestFetchFreshHonorsCap(t *testing.T) {
	api := &fakeAPI{byKeyword: map[string][]SeedVideo{
		"재테크": {seed("a"), seed("b")},
		"절세":  {seed("c")},
	}}
	fetcher := NewFetcher(api, testConfig("재테크", "절세"), zap.NewNop())

	videos, err := fetcher.FetchFresh(context.Background(), &fakeChecker{})

	require.NoError(t, err)
	assert.Len(t, videos, 2)
}
