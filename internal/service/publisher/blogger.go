package publisher

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	blogger "google.golang.org/api/blogger/v3"
	"google.golang.org/api/option"

	"github.com/jwlee-dev/blogpilot/internal/config"
)

// GoogleTokenProvider exchanges the long-lived OAuth refresh token for a
// short-lived access token on every publish.
type GoogleTokenProvider struct {
	conf         *oauth2.Config
	refreshToken string
}

func NewGoogleTokenProvider(cfg *config.BloggerConfig) *GoogleTokenProvider {
	return &GoogleTokenProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{blogger.BloggerScope},
		},
		refreshToken: cfg.RefreshToken,
	}
}

func (p *GoogleTokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.refreshToken == "" {
		return "", errors.New("blogger refresh token is not configured")
	}

	source := p.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})
	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	return token.AccessToken, nil
}

// BloggerPoster submits posts to the Blogger v3 API as live posts.
type BloggerPoster struct {
	blogID string
}

func NewBloggerPoster(cfg *config.BloggerConfig) *BloggerPoster {
	return &BloggerPoster{blogID: cfg.BlogID}
}

func (b *BloggerPoster) CreatePost(ctx context.Context, accessToken, title, content string) (string, string, error) {
	token := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := blogger.NewService(ctx, option.WithTokenSource(token))
	if err != nil {
		return "", "", fmt.Errorf("failed to create blogger client: %w", err)
	}

	post, err := svc.Posts.Insert(b.blogID, &blogger.Post{
		Title:   title,
		Content: content,
	}).IsDraft(false).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to publish to blogger: %w", err)
	}

	return post.Id, post.Url, nil
}
