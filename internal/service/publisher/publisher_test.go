package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service"
)

type fakeStore struct {
	drafts        map[uint]*models.Draft
	history       []*models.PublishHistory
	statusUpdates []string
	historyErr    error
	statusErr     error
}

func newFakeStore(drafts ...*models.Draft) *fakeStore {
	s := &fakeStore{drafts: map[uint]*models.Draft{}}
	for _, d := range drafts {
		s.drafts[d.ID] = d
	}
	return s
}

func (f *fakeStore) GetDraft(id uint) (*models.Draft, error) {
	draft, ok := f.drafts[id]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	return draft, nil
}

func (f *fakeStore) UpdateStatus(id uint, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	f.drafts[id].Status = status
	return nil
}

func (f *fakeStore) CreateHistory(record *models.PublishHistory) error {
	if f.historyErr != nil {
		return f.historyErr
	}
	f.history = append(f.history, record)
	return nil
}

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) AccessToken(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakePoster struct {
	postID string
	url    string
	err    error
	calls  int
	titles []string
}

func (f *fakePoster) CreatePost(ctx context.Context, accessToken, title, content string) (string, string, error) {
	f.calls++
	f.titles = append(f.titles, title)
	if f.err != nil {
		return "", "", f.err
	}
	return f.postID, f.url, nil
}

func pendingDraft() *models.Draft {
	return &models.Draft{
		ID:      1,
		Title:   "금리 전망",
		Content: "<p>본문</p>",
		Status:  models.StatusPending,
	}
}

func TestPublishSuccess(t *testing.T) {
	store := newFakeStore(pendingDraft())
	tokens := &fakeTokens{token: "at-123"}
	poster := &fakePoster{postID: "post-9", url: "https://blog.example.com/post-9"}
	pipeline := NewPipeline(store, tokens, poster, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, false)

	assert.True(t, result.Success)
	assert.Equal(t, "post-9", result.PostID)
	assert.Equal(t, "https://blog.example.com/post-9", result.URL)
	assert.Equal(t, models.StatusApproved, store.drafts[1].Status)
	require.Len(t, store.history, 1)
	assert.Equal(t, uint(1), store.history[0].DraftID)
	assert.Equal(t, "post-9", store.history[0].PostID)
	assert.False(t, store.history[0].PublishedAt.IsZero())
}

func TestPublishDryRunTouchesNothing(t *testing.T) {
	store := newFakeStore(pendingDraft())
	tokens := &fakeTokens{token: "at-123"}
	poster := &fakePoster{postID: "post-9"}
	pipeline := NewPipeline(store, tokens, poster, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, true)

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "dry run")
	assert.Zero(t, tokens.calls, "dry run must not refresh credentials")
	assert.Zero(t, poster.calls, "dry run must not create posts")
	assert.Equal(t, models.StatusPending, store.drafts[1].Status)
	assert.Empty(t, store.history)
}

func TestPublishDraftNotFound(t *testing.T) {
	pipeline := NewPipeline(newFakeStore(), &fakeTokens{}, &fakePoster{}, zap.NewNop())

	result := pipeline.Publish(context.Background(), 42, false)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
}

func TestPublishMissingFields(t *testing.T) {
	draft := pendingDraft()
	draft.Content = ""
	store := newFakeStore(draft)
	tokens := &fakeTokens{}
	pipeline := NewPipeline(store, tokens, &fakePoster{}, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, false)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "missing")
	assert.Zero(t, tokens.calls)
}

func TestPublishCredentialFailureLeavesDraftUntouched(t *testing.T) {
	store := newFakeStore(pendingDraft())
	tokens := &fakeTokens{err: errors.New("invalid_grant")}
	poster := &fakePoster{}
	pipeline := NewPipeline(store, tokens, poster, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, false)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "credential refresh failed")
	assert.Equal(t, 1, tokens.calls, "credential errors are never retried")
	assert.Zero(t, poster.calls)
	assert.Equal(t, models.StatusPending, store.drafts[1].Status)
	assert.Empty(t, store.history)
}

func TestPublishPlatformFailureLeavesDraftUntouched(t *testing.T) {
	store := newFakeStore(pendingDraft())
	pipeline := NewPipeline(store, &fakeTokens{token: "at"}, &fakePoster{err: errors.New("500 backend error")}, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, false)

	assert.False(t, result.Success)
	assert.Equal(t, models.StatusPending, store.drafts[1].Status)
	assert.Empty(t, store.history)
}

func TestPublishHistoryFailureIsPartialWarning(t *testing.T) {
	store := newFakeStore(pendingDraft())
	store.historyErr = errors.New("disk full")
	pipeline := NewPipeline(store, &fakeTokens{token: "at"}, &fakePoster{postID: "p1", url: "u"}, zap.NewNop())

	result := pipeline.Publish(context.Background(), 1, false)

	assert.True(t, result.Success, "the post did go out")
	assert.Contains(t, result.Message, "history record failed")
	assert.Equal(t, "p1", result.PostID)
	assert.Equal(t, models.StatusApproved, store.drafts[1].Status)
}
