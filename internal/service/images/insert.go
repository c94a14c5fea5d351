package images

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Candidate is an ephemeral search result; it is never persisted.
type Candidate struct {
	URL             string `json:"url"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
}

// Insertion cadence. Visual-spacing policy, not a hard invariant: at most
// maxInsertions searched images per article, preferring a slot before every
// other h2 heading, falling back to every paragraphStep-th paragraph break.
const (
	maxInsertions = 2
	paragraphStep = 3
)

var (
	h2Pattern     = regexp.MustCompile(`(?is)<h2[^>]*>.*?</h2>`)
	pClosePattern = regexp.MustCompile(`(?i)</p>`)
)

// YouTubeThumbnail returns the deterministic max-resolution thumbnail URL
// for a video id.
func YouTubeThumbnail(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

func heroBlock(videoID string) string {
	return fmt.Sprintf(`<figure style="margin: 0 0 2em 0;">
  <img src="%s" alt="영상 썸네일" style="width: 100%%; height: auto; border-radius: 8px;" />
</figure>
`, YouTubeThumbnail(videoID))
}

func figureBlock(img Candidate) string {
	return fmt.Sprintf(`<figure style="margin: 2em 0;">
  <img src="%s" alt="%s" style="width: 100%%; height: auto; border-radius: 8px;" />
  <figcaption style="text-align: center; font-size: 0.85em; color: #666; margin-top: 0.5em;">
    Photo by <a href="%s?utm_source=blog&utm_medium=referral" target="_blank" rel="noopener">%s</a> on <a href="https://unsplash.com?utm_source=blog&utm_medium=referral" target="_blank" rel="noopener">Unsplash</a>
  </figcaption>
</figure>
`, img.URL, img.Alt, img.PhotographerURL, img.Photographer)
}

type insertionPoint struct {
	offset int
	block  string
}

// Insert splices candidate image blocks into html. A hero thumbnail block
// is prepended when heroVideoID is set. Searched images go immediately
// before every other h2 heading (second, fourth, ...); when the article
// has too few headings, remaining images land after every
// paragraphStep-th closing paragraph tag.
//
// Insertions only ever happen at tag boundaries already present in the
// text, and every spliced block is internally balanced, so the output
// keeps the input's tag parity.
func Insert(html string, candidates []Candidate, heroVideoID string) string {
	result := html
	if heroVideoID != "" {
		result = heroBlock(heroVideoID) + result
	}

	inserted := 0

	headings := h2Pattern.FindAllStringIndex(result, -1)
	if len(headings) >= 2 && len(candidates) > 0 {
		var points []insertionPoint
		for i := 1; i < len(headings) && inserted < maxInsertions && inserted < len(candidates); i += 2 {
			points = append(points, insertionPoint{
				offset: headings[i][0],
				block:  figureBlock(candidates[inserted]),
			})
			inserted++
		}
		result = splice(result, points)
	}

	if inserted < maxInsertions && inserted < len(candidates) {
		closes := pClosePattern.FindAllStringIndex(result, -1)

		var points []insertionPoint
		for idx, close := range closes {
			if (idx+1)%paragraphStep != 0 {
				continue
			}
			if inserted >= maxInsertions || inserted >= len(candidates) {
				break
			}
			points = append(points, insertionPoint{
				offset: close[1],
				block:  "\n" + figureBlock(candidates[inserted]),
			})
			inserted++
		}
		result = splice(result, points)
	}

	return result
}

// splice inserts blocks in descending offset order so earlier insertions
// never shift offsets that have not been consumed yet.
func splice(s string, points []insertionPoint) string {
	sort.Slice(points, func(i, j int) bool { return points[i].offset > points[j].offset })

	var b strings.Builder
	for _, p := range points {
		b.Reset()
		b.WriteString(s[:p.offset])
		b.WriteString(p.block)
		b.WriteString(s[p.offset:])
		s = b.String()
	}
	return s
}
