package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/config"
	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service/generator"
	"github.com/jwlee-dev/blogpilot/internal/service/youtube"
)

type fakeSeedSource struct {
	videos []youtube.SeedVideo
	err    error
}

func (f *fakeSeedSource) FetchFresh(ctx context.Context, checker youtube.SeedChecker) ([]youtube.SeedVideo, error) {
	return f.videos, f.err
}

type fakeArticleSource struct {
	requests []generator.VideoRequest
	err      error
}

func (f *fakeArticleSource) FromVideo(ctx context.Context, req generator.VideoRequest) (*generator.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &generator.Result{DraftID: 7, Title: req.VideoTitle}, nil
}

type fakeSettings struct {
	keywords string
	err      error
}

func (f *fakeSettings) SeedExists(videoID string) (bool, error) { return false, nil }

func (f *fakeSettings) GetSetting(key string) (string, error) {
	return f.keywords, f.err
}

func schedulerUnderTest(seeds *fakeSeedSource, articles *fakeArticleSource, settings *fakeSettings, hour int) *Scheduler {
	cfg := &config.SchedulerConfig{
		Enabled:           true,
		CronSpec:          "0 * * * *",
		InformationalHour: 0,
		DefaultKeywords:   "금리, 주식",
	}
	s := NewScheduler(cfg, seeds, articles, settings, zap.NewNop())
	s.nowFunc = func() time.Time {
		return time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
	}
	s.pickIndex = func(n int) int { return 0 }
	return s
}

func seedVideos(ids ...string) []youtube.SeedVideo {
	videos := make([]youtube.SeedVideo, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, youtube.SeedVideo{
			ID:          id,
			Title:       "영상 " + id,
			Description: "설명 " + id,
		})
	}
	return videos
}

func TestSchedulerRunGeneratesFromPickedVideo(t *testing.T) {
	seeds := &fakeSeedSource{videos: seedVideos("v1", "v2")}
	articles := &fakeArticleSource{}
	settings := &fakeSettings{keywords: "부동산, 투자"}

	schedulerUnderTest(seeds, articles, settings, 0).RunOnce(context.Background())

	require.Len(t, articles.requests, 1)
	req := articles.requests[0]
	assert.Equal(t, "v1", req.VideoID)
	assert.Equal(t, "영상 v1", req.VideoTitle)
	assert.Equal(t, "부동산, 투자", req.Keywords)
}

func TestSchedulerCategoryByHour(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected string
	}{
		{"informational hour", 0, models.CategoryInformational},
		{"other hour", 9, models.CategoryPromotional},
		{"late hour", 23, models.CategoryPromotional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := &fakeArticleSource{}
			seeds := &fakeSeedSource{videos: seedVideos("v1")}
			schedulerUnderTest(seeds, articles, &fakeSettings{}, tt.hour).RunOnce(context.Background())

			require.Len(t, articles.requests, 1)
			assert.Equal(t, tt.expected, articles.requests[0].Category)
		})
	}
}

func TestSchedulerRandomPickStaysInWindow(t *testing.T) {
	seeds := &fakeSeedSource{videos: seedVideos("v1", "v2", "v3", "v4", "v5")}
	articles := &fakeArticleSource{}
	s := schedulerUnderTest(seeds, articles, &fakeSettings{}, 9)

	var windows []int
	s.pickIndex = func(n int) int {
		windows = append(windows, n)
		return n - 1
	}
	s.RunOnce(context.Background())

	assert.Equal(t, []int{3}, windows, "pick is bounded to the top few videos")
	require.Len(t, articles.requests, 1)
	assert.Equal(t, "v3", articles.requests[0].VideoID)
}

func TestSchedulerFallsBackToConfiguredKeywords(t *testing.T) {
	tests := []struct {
		name     string
		settings *fakeSettings
	}{
		{"empty setting", &fakeSettings{keywords: ""}},
		{"read failure", &fakeSettings{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := &fakeArticleSource{}
			seeds := &fakeSeedSource{videos: seedVideos("v1")}
			schedulerUnderTest(seeds, articles, tt.settings, 9).RunOnce(context.Background())

			require.Len(t, articles.requests, 1)
			assert.Equal(t, "금리, 주식", articles.requests[0].Keywords)
		})
	}
}

func TestSchedulerNoVideosSkipsGeneration(t *testing.T) {
	articles := &fakeArticleSource{}
	schedulerUnderTest(&fakeSeedSource{}, articles, &fakeSettings{}, 0).RunOnce(context.Background())
	assert.Empty(t, articles.requests)
}

func TestSchedulerErrorsEndTheRunQuietly(t *testing.T) {
	articles := &fakeArticleSource{err: errors.New("model unavailable")}
	seeds := &fakeSeedSource{videos: seedVideos("v1")}

	assert.NotPanics(t, func() {
		schedulerUnderTest(seeds, articles, &fakeSettings{}, 0).RunOnce(context.Background())
	})

	assert.NotPanics(t, func() {
		schedulerUnderTest(&fakeSeedSource{err: errors.New("quota exceeded")}, &fakeArticleSource{}, &fakeSettings{}, 0).RunOnce(context.Background())
	})
}
