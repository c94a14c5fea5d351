package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service"
)

// Result is the structured outcome of a publish call. The pipeline never
// lets an error escape past it; callers always receive a Result.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	PostID  string `json:"post_id,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Store is the slice of the draft store the pipeline needs.
type Store interface {
	GetDraft(id uint) (*models.Draft, error)
	UpdateStatus(id uint, status string) error
	CreateHistory(record *models.PublishHistory) error
}

// TokenProvider exchanges the stored refresh credential for a short-lived
// access token. Failures are terminal: credential errors are not transient
// the way generation errors are, so the pipeline never retries them.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// PostCreator pushes a post to the blog platform as immediately visible.
type PostCreator interface {
	CreatePost(ctx context.Context, accessToken, title, content string) (postID, url string, err error)
}

type Pipeline struct {
	store  Store
	tokens TokenProvider
	posts  PostCreator
	logger *zap.Logger
}

func NewPipeline(store Store, tokens TokenProvider, posts PostCreator, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:  store,
		tokens: tokens,
		posts:  posts,
		logger: logger,
	}
}

// Publish pushes a draft to the blog platform. With dryRun set it stops
// after validation, touching neither the network nor the draft.
func (p *Pipeline) Publish(ctx context.Context, draftID uint, dryRun bool) Result {
	draft, err := p.store.GetDraft(draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return Result{Message: fmt.Sprintf("draft %d not found", draftID)}
		}
		return Result{Message: err.Error()}
	}

	if draft.Title == "" || draft.Content == "" {
		return Result{Message: "draft title or content is missing"}
	}

	if dryRun {
		return Result{
			Success: true,
			Message: fmt.Sprintf("dry run: would publish %q", draft.Title),
		}
	}

	token, err := p.tokens.AccessToken(ctx)
	if err != nil {
		p.logger.Error("Credential refresh failed", zap.Uint("draft_id", draftID), zap.Error(err))
		return Result{Message: fmt.Sprintf("credential refresh failed: %v", err)}
	}

	postID, postURL, err := p.posts.CreatePost(ctx, token, draft.Title, draft.Content)
	if err != nil {
		p.logger.Error("Post creation failed", zap.Uint("draft_id", draftID), zap.Error(err))
		return Result{Message: fmt.Sprintf("failed to publish post: %v", err)}
	}

	// The state flip and the history record are one logical unit. When
	// the history write fails after the flip, the publish still
	// succeeded; surface it as a partial-failure warning.
	if err := p.store.UpdateStatus(draftID, models.StatusApproved); err != nil {
		p.logger.Error("Draft published but status update failed",
			zap.Uint("draft_id", draftID),
			zap.String("post_id", postID),
			zap.Error(err))
		return Result{
			Success: true,
			Message: fmt.Sprintf("published, but draft status update failed: %v", err),
			PostID:  postID,
			URL:     postURL,
		}
	}

	history := &models.PublishHistory{
		DraftID:     draftID,
		PostID:      postID,
		URL:         postURL,
		PublishedAt: time.Now(),
	}
	if err := p.store.CreateHistory(history); err != nil {
		p.logger.Error("Draft published but history record failed",
			zap.Uint("draft_id", draftID),
			zap.String("post_id", postID),
			zap.Error(err))
		return Result{
			Success: true,
			Message: fmt.Sprintf("published, but history record failed: %v", err),
			PostID:  postID,
			URL:     postURL,
		}
	}

	p.logger.Info("Draft published",
		zap.Uint("draft_id", draftID),
		zap.String("post_id", postID),
		zap.String("url", postURL))

	return Result{Success: true, Message: "published successfully", PostID: postID, URL: postURL}
}
