package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/service/llm"
)

const (
	keywordCount      = 3
	maxContentExcerpt = 500
)

// fallbackKeywordSets are used whenever the model cannot produce a usable
// keyword triple. One set is picked at random.
var fallbackKeywordSets = [][]string{
	{"stock market", "finance chart", "investment"},
	{"economy", "business growth", "money"},
	{"trading", "financial analysis", "market trends"},
}

const keywordPrompt = `Based on this blog post about economics/finance, suggest 3 image search keywords in English.
Return ONLY a JSON array of 3 strings, nothing else.

Title: %s
Content preview: %s

Example response: ["stock market graph", "business meeting", "money investment"]`

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Searcher finds stock-photo candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Candidate, error)
}

// Engine derives search keywords from generated text, fetches candidates
// and splices them into the article HTML.
type Engine struct {
	llm        llm.Client
	searcher   Searcher
	logger     *zap.Logger
	perKeyword int
}

func NewEngine(client llm.Client, searcher Searcher, perKeyword int, logger *zap.Logger) *Engine {
	if perKeyword <= 0 {
		perKeyword = 2
	}
	return &Engine{
		llm:        client,
		searcher:   searcher,
		logger:     logger,
		perKeyword: perKeyword,
	}
}

// SuggestKeywords asks the model for exactly three English search phrases.
// It never fails: any call or parse problem falls back to a fixed set.
func (e *Engine) SuggestKeywords(ctx context.Context, title, content string) []string {
	excerpt := content
	if len(excerpt) > maxContentExcerpt {
		excerpt = excerpt[:maxContentExcerpt]
	}

	response, err := e.llm.Complete(ctx, "", fmt.Sprintf(keywordPrompt, title, excerpt), 100)
	if err != nil {
		e.logger.Warn("Keyword suggestion failed, using fallback", zap.Error(err))
		return fallbackKeywords()
	}

	raw := jsonArrayPattern.FindString(response)
	if raw == "" {
		return fallbackKeywords()
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		e.logger.Warn("Keyword suggestion returned invalid JSON", zap.Error(err))
		return fallbackKeywords()
	}

	var cleaned []string
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) < keywordCount {
		return fallbackKeywords()
	}

	return cleaned[:keywordCount]
}

func fallbackKeywords() []string {
	return fallbackKeywordSets[rand.Intn(len(fallbackKeywordSets))]
}

// Enrich splices illustrative images into the article. Search failures
// degrade to fewer (or zero) inserted images; the hero thumbnail for a
// seed video needs no lookup and is always prepended.
func (e *Engine) Enrich(ctx context.Context, title, html, heroVideoID string) (string, error) {
	var candidates []Candidate

	if e.searcher != nil {
		keywords := e.SuggestKeywords(ctx, title, html)
		e.logger.Info("Suggested image keywords", zap.Strings("keywords", keywords))

		for _, keyword := range keywords {
			found, err := e.searcher.Search(ctx, keyword, e.perKeyword)
			if err != nil {
				e.logger.Warn("Image search failed",
					zap.String("query", keyword),
					zap.Error(err))
				continue
			}
			candidates = append(candidates, found...)
		}
	}

	if len(candidates) == 0 && heroVideoID == "" {
		return html, nil
	}

	enriched := Insert(html, candidates, heroVideoID)
	e.logger.Info("Inserted images into content",
		zap.Int("candidates", len(candidates)),
		zap.Bool("hero", heroVideoID != ""))
	return enriched, nil
}
