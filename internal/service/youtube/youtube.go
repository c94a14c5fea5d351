package youtube

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/jwlee-dev/blogpilot/internal/config"
)

// SeedVideo is a candidate input for the generation pipeline.
type SeedVideo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Channel     string    `json:"channel"`
	PublishedAt time.Time `json:"published_at"`
}

// API is the slice of the YouTube Data API the fetcher uses.
type API interface {
	// Search returns recent videos for a keyword, most-viewed first.
	Search(ctx context.Context, keyword string, since time.Time, max int64) ([]SeedVideo, error)
	// Details fetches the full snippet for one video; search results
	// carry truncated descriptions.
	Details(ctx context.Context, videoID string) (*SeedVideo, error)
}

// SeedChecker reports whether a video already seeded an existing draft.
type SeedChecker interface {
	SeedExists(videoID string) (bool, error)
}

type GoogleAPI struct {
	svc    *youtubeapi.Service
	logger *zap.Logger
}

func NewGoogleAPI(ctx context.Context, apiKey string, logger *zap.Logger) (*GoogleAPI, error) {
	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &GoogleAPI{svc: svc, logger: logger}, nil
}

func (g *GoogleAPI) Search(ctx context.Context, keyword string, since time.Time, max int64) ([]SeedVideo, error) {
	resp, err := g.svc.Search.List([]string{"snippet"}).
		Q(keyword).
		Type("video").
		Order("viewCount").
		PublishedAfter(since.UTC().Format(time.RFC3339)).
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search for %q failed: %w", keyword, err)
	}

	var videos []SeedVideo
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, SeedVideo{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: publishedAt,
		})
	}
	return videos, nil
}

func (g *GoogleAPI) Details(ctx context.Context, videoID string) (*SeedVideo, error) {
	resp, err := g.svc.Videos.List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube details for %s failed: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	snippet := resp.Items[0].Snippet
	publishedAt, _ := time.Parse(time.RFC3339, snippet.PublishedAt)
	return &SeedVideo{
		ID:          videoID,
		Title:       snippet.Title,
		Description: snippet.Description,
		Channel:     snippet.ChannelTitle,
		PublishedAt: publishedAt,
	}, nil
}

// Fetcher collects fresh seed videos across the configured search
// keywords, skipping videos already referenced by a draft and videos
// whose descriptions are too thin to prompt from.
type Fetcher struct {
	api    API
	cfg    *config.YouTubeConfig
	logger *zap.Logger
}

func NewFetcher(api API, cfg *config.YouTubeConfig, logger *zap.Logger) *Fetcher {
	return &Fetcher{api: api, cfg: cfg, logger: logger}
}

func (f *Fetcher) FetchFresh(ctx context.Context, checker SeedChecker) ([]SeedVideo, error) {
	since := time.Now().AddDate(0, 0, -f.cfg.LookbackDays)
	seen := make(map[string]bool)
	var collected []SeedVideo

	for _, keyword := range f.cfg.SearchKeywords {
		results, err := f.api.Search(ctx, keyword, since, int64(f.cfg.MaxPerKeyword))
		if err != nil {
			f.logger.Warn("Keyword search failed",
				zap.String("keyword", keyword),
				zap.Error(err))
			continue
		}

		for _, video := range results {
			if seen[video.ID] {
				continue
			}
			seen[video.ID] = true

			exists, err := checker.SeedExists(video.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				f.logger.Debug("Skipping video already in drafts", zap.String("video_id", video.ID))
				continue
			}

			details, err := f.api.Details(ctx, video.ID)
			if err != nil {
				f.logger.Warn("Failed to fetch video details",
					zap.String("video_id", video.ID),
					zap.Error(err))
				continue
			}
			if len(details.Description) < f.cfg.MinDescription {
				f.logger.Debug("Skipping video with short description", zap.String("video_id", video.ID))
				continue
			}

			collected = append(collected, *details)
			f.logger.Info("Collected seed video",
				zap.String("video_id", details.ID),
				zap.String("title", details.Title))

			if len(collected) >= f.cfg.MaxVideos {
				return collected, nil
			}
		}
	}

	return collected, nil
}
