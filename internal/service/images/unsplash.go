package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/config"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// UnsplashClient queries the Unsplash photo search API. Non-success
// responses yield an empty result, never an error: enrichment degrades
// instead of failing.
type UnsplashClient struct {
	accessKey   string
	orientation string
	logger      *zap.Logger
	client      *http.Client
}

func NewUnsplashClient(cfg *config.UnsplashConfig, logger *zap.Logger) *UnsplashClient {
	return &UnsplashClient{
		accessKey:   cfg.AccessKey,
		orientation: cfg.Orientation,
		logger:      logger,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

func (c *UnsplashClient) Search(ctx context.Context, query string, max int) ([]Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(max))
	params.Set("orientation", c.orientation)

	req, err := http.NewRequestWithContext(ctx, "GET", unsplashSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Unsplash API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("query", query))
		return []Candidate{}, nil
	}

	var response unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]Candidate, 0, len(response.Results))
	for _, photo := range response.Results {
		imageURL := photo.URLs.Regular
		if imageURL == "" {
			imageURL = photo.URLs.Small
		}
		if imageURL == "" {
			continue
		}

		alt := photo.AltDescription
		if alt == "" {
			alt = query
		}
		photographer := photo.User.Name
		if photographer == "" {
			photographer = "Unknown"
		}
		photographerURL := photo.User.Links.HTML
		if photographerURL == "" {
			photographerURL = "https://unsplash.com"
		}

		candidates = append(candidates, Candidate{
			URL:             imageURL,
			Alt:             alt,
			Photographer:    photographer,
			PhotographerURL: photographerURL,
		})
	}

	return candidates, nil
}
