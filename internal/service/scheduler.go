package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/config"
	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service/generator"
	"github.com/jwlee-dev/blogpilot/internal/service/youtube"
)

// SettingDefaultKeywords holds the comma-separated keyword list scheduled
// runs pass to the generator. Falls back to the configured default.
const SettingDefaultKeywords = "default_keywords"

// pickWindow bounds the random choice among collected seed videos.
const pickWindow = 3

// SeedSource collects fresh, not-yet-drafted seed videos.
type SeedSource interface {
	FetchFresh(ctx context.Context, checker youtube.SeedChecker) ([]youtube.SeedVideo, error)
}

// ArticleSource turns a seed video into a pending draft.
type ArticleSource interface {
	FromVideo(ctx context.Context, req generator.VideoRequest) (*generator.Result, error)
}

// SettingReader is the slice of the draft store the scheduler reads from.
type SettingReader interface {
	SeedExists(videoID string) (bool, error)
	GetSetting(key string) (string, error)
}

type Scheduler struct {
	config    *config.SchedulerConfig
	logger    *zap.Logger
	seeds     SeedSource
	articles  ArticleSource
	store     SettingReader
	cron      *cron.Cron
	nowFunc   func() time.Time
	pickIndex func(n int) int
}

func NewScheduler(cfg *config.SchedulerConfig, seeds SeedSource, articles ArticleSource, store SettingReader, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		config:    cfg,
		logger:    logger,
		seeds:     seeds,
		articles:  articles,
		store:     store,
		nowFunc:   time.Now,
		pickIndex: rand.Intn,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.CronSpec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		s.logger.Error("Invalid cron expression",
			zap.String("cron_spec", s.config.CronSpec),
			zap.Error(err))
		return err
	}

	s.logger.Info("Starting scheduler", zap.String("cron_spec", s.config.CronSpec))
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.logger.Info("Scheduler shutdown completed")
}

// RunOnce performs a single scheduled generation pass. Errors are logged
// and end the run; nothing escapes past the scheduling boundary. Publishing
// is never triggered here, a run only leaves a pending draft behind.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := s.nowFunc()

	videos, err := s.seeds.FetchFresh(ctx, s.store)
	if err != nil {
		s.logger.Error("Seed video collection failed", zap.Error(err))
		return
	}
	if len(videos) == 0 {
		s.logger.Info("No fresh seed videos, skipping run")
		return
	}

	window := len(videos)
	if window > pickWindow {
		window = pickWindow
	}
	video := videos[s.pickIndex(window)]
	category := s.categoryForHour(start.UTC().Hour())

	keywords, err := s.store.GetSetting(SettingDefaultKeywords)
	if err != nil {
		s.logger.Warn("Failed to read keyword setting, using configured default", zap.Error(err))
		keywords = ""
	}
	if keywords == "" {
		keywords = s.config.DefaultKeywords
	}

	result, err := s.articles.FromVideo(ctx, generator.VideoRequest{
		VideoID:          video.ID,
		VideoTitle:       video.Title,
		VideoDescription: video.Description,
		Category:         category,
		Keywords:         keywords,
	})
	if err != nil {
		s.logger.Error("Scheduled generation failed",
			zap.String("video_id", video.ID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	s.logger.Info("Scheduled generation completed",
		zap.Uint("draft_id", result.DraftID),
		zap.String("title", result.Title),
		zap.String("category", category),
		zap.String("video_id", video.ID),
		zap.Duration("duration", time.Since(start)))
}

func (s *Scheduler) categoryForHour(hour int) string {
	if hour == s.config.InformationalHour {
		return models.CategoryInformational
	}
	return models.CategoryPromotional
}
