package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service/llm"
	"github.com/jwlee-dev/blogpilot/pkg/util"
)

const (
	maxAttempts = 3
	baseBackoff = time.Second

	previewLength      = 200
	maxSeedDescription = 5000

	// Settings key holding the marketing-target description used by the
	// topic and image paths.
	SettingMarketingTarget = "marketing_target"
)

// Store is the slice of the draft store the generator needs.
type Store interface {
	CreateDraft(draft *models.Draft) error
	GetSetting(key string) (string, error)
}

// Enricher splices illustrative images into generated HTML. Enrichment is
// best-effort: the generator swallows its errors and keeps the content
// unenriched.
type Enricher interface {
	Enrich(ctx context.Context, title, html, heroVideoID string) (string, error)
}

type VideoRequest struct {
	VideoID          string
	VideoTitle       string
	VideoDescription string
	Category         string
	Keywords         string
}

type TopicRequest struct {
	Topic    string
	Keywords string
}

type ImageRequest struct {
	Image    []byte
	MimeType string
	Keywords string
}

type Result struct {
	DraftID uint   `json:"draft_id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
}

type Service struct {
	llm       llm.Client
	store     Store
	enricher  Enricher
	logger    *zap.Logger
	maxTokens int
}

func NewService(client llm.Client, store Store, enricher Enricher, maxTokens int, logger *zap.Logger) *Service {
	return &Service{
		llm:       client,
		store:     store,
		enricher:  enricher,
		logger:    logger,
		maxTokens: maxTokens,
	}
}

// FromVideo generates a pending draft from a seed video.
func (s *Service) FromVideo(ctx context.Context, req VideoRequest) (*Result, error) {
	if req.VideoID == "" || req.VideoTitle == "" {
		return nil, errors.New("video id and title are required")
	}
	if !models.ValidCategory(req.Category) {
		return nil, fmt.Errorf("unknown content category %q", req.Category)
	}

	template := informationalTemplate
	if req.Category == models.CategoryPromotional {
		template = promotionalTemplate
	}

	description := req.VideoDescription
	if len(description) > maxSeedDescription {
		description = description[:maxSeedDescription]
	}

	prompt := strings.NewReplacer(
		"{{VIDEO_TITLE}}", req.VideoTitle,
		"{{VIDEO_DESCRIPTION}}", description,
		"{{SEO_KEYWORDS}}", req.Keywords,
	).Replace(template)

	title, content, err := s.generate(ctx, systemPrompt, prompt, req.VideoTitle)
	if err != nil {
		return nil, err
	}

	content = s.enrich(ctx, title, content, req.VideoID)

	draft := &models.Draft{
		Title:          title,
		Content:        content,
		SourceVideoID:  req.VideoID,
		SourceVideoURL: "https://www.youtube.com/watch?v=" + req.VideoID,
		Category:       req.Category,
		Keywords:       req.Keywords,
		Status:         models.StatusPending,
	}
	if err := s.store.CreateDraft(draft); err != nil {
		return nil, err
	}

	return &Result{DraftID: draft.ID, Title: title, Preview: util.Preview(content, previewLength)}, nil
}

// FromTopic generates a marketing draft for a topic. When no topic is
// given, the model is first asked for today's trending topic.
func (s *Service) FromTopic(ctx context.Context, req TopicRequest) (*Result, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		suggested, err := s.llm.Complete(ctx, "", trendingTopicPrompt, 100)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest a topic: %w", err)
		}
		topic = strings.TrimSpace(suggested)
		if topic == "" {
			topic = "재테크 트렌드"
		}
		s.logger.Info("Resolved trending topic", zap.String("topic", topic))
	}

	return s.generateMarketing(ctx, topic, req.Keywords)
}

// FromImage captions the uploaded image, turns the caption into a one-line
// topic and then follows the topic path.
func (s *Service) FromImage(ctx context.Context, req ImageRequest) (*Result, error) {
	if len(req.Image) == 0 {
		return nil, errors.New("image data is required")
	}

	caption, err := s.llm.Caption(ctx, req.Image, req.MimeType, captionPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to caption image: %w", err)
	}

	topic, err := s.llm.Complete(ctx, "", fmt.Sprintf(topicFromCaptionPrompt, caption), 100)
	if err != nil {
		return nil, fmt.Errorf("failed to derive topic from caption: %w", err)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = strings.TrimSpace(caption)
	}
	s.logger.Info("Derived topic from image", zap.String("topic", topic))

	return s.generateMarketing(ctx, topic, req.Keywords)
}

func (s *Service) generateMarketing(ctx context.Context, topic, keywords string) (*Result, error) {
	target, err := s.store.GetSetting(SettingMarketingTarget)
	if err != nil {
		return nil, err
	}
	if target == "" {
		target = noMarketingTarget
	}

	prompt := strings.NewReplacer(
		"{{TOPIC}}", topic,
		"{{SEO_KEYWORDS}}", keywords,
		"{{MARKETING_TARGET}}", target,
	).Replace(marketingTemplate)

	title, content, err := s.generate(ctx, marketingSystemPrompt, prompt, topic)
	if err != nil {
		return nil, err
	}

	content = s.enrich(ctx, title, content, "")

	draft := &models.Draft{
		Title:    title,
		Content:  content,
		Category: models.CategoryPromotional,
		Keywords: keywords,
		Status:   models.StatusPending,
	}
	if err := s.store.CreateDraft(draft); err != nil {
		return nil, err
	}

	return &Result{DraftID: draft.ID, Title: title, Preview: util.Preview(content, previewLength)}, nil
}

// generate calls the model with bounded retry and post-processes the raw
// output. fallbackTitle is used when no title marker is present.
func (s *Service) generate(ctx context.Context, system, user, fallbackTitle string) (title, content string, err error) {
	raw, err := util.Retry(ctx, maxAttempts, baseBackoff, func() (string, error) {
		return s.llm.Complete(ctx, system, user, s.maxTokens)
	})
	if err != nil {
		return "", "", fmt.Errorf("content generation failed: %w", err)
	}

	content = Normalize(stripCodeFences(raw))

	title, content, found := extractTitle(content)
	if !found {
		title = fallbackTitle
	}
	if strings.TrimSpace(content) == "" {
		return "", "", errors.New("generated content is empty")
	}

	return title, content, nil
}

func (s *Service) enrich(ctx context.Context, title, content, heroVideoID string) string {
	if s.enricher == nil {
		return content
	}

	enriched, err := s.enricher.Enrich(ctx, title, content, heroVideoID)
	if err != nil {
		// Enrichment is best-effort; keep the unenriched content.
		s.logger.Warn("Image enrichment failed", zap.Error(err))
		return content
	}
	return enriched
}

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:html)?\\s*")
	trailingFence = regexp.MustCompile("```\\s*$")

	koreanTitleMarker  = regexp.MustCompile(`\[제목:\s*(.*?)\]\n?`)
	englishTitleMarker = regexp.MustCompile(`(?i)^\s*Title:\s*(.+)\n?`)
)

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractTitle pulls the bracketed title marker out of the content. Only
// the first marker is removed from the returned content.
func extractTitle(content string) (title, remaining string, found bool) {
	for _, marker := range []*regexp.Regexp{koreanTitleMarker, englishTitleMarker} {
		loc := marker.FindStringSubmatchIndex(content)
		if loc == nil {
			continue
		}
		title = strings.TrimSpace(content[loc[2]:loc[3]])
		if title == "" {
			continue
		}
		remaining = strings.TrimSpace(content[:loc[0]] + content[loc[1]:])
		return title, remaining, true
	}

	return "", content, false
}
