package compass

import (
	"context"
	"strings"

	"github.com/sells-group/career-compass/pkg/google"
	"github.com/sells-group/career-compass/pkg/jina"
)

// SearchHit is one web search result.
type SearchHit struct {
	Title   string
	Link    string
	Snippet string
}

// Searcher runs a web search and returns at most limit hits.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// GoogleSearcher adapts the Custom Search client to Searcher.
type GoogleSearcher struct {
	Client google.Client
}

// Search implements Searcher.
func (s *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	resp, err := s.Client.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, SearchHit{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return truncateHits(hits, limit), nil
}

// JinaSearcher adapts the Jina search client to Searcher. Jina has no
// result-count parameter, so hits are truncated locally.
type JinaSearcher struct {
	Client jina.Client
}

// Search implements Searcher.
func (s *JinaSearcher) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	resp, err := s.Client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(resp.Data))
	for _, r := range resp.Data {
		snippet := strings.TrimSpace(r.Description)
		if snippet == "" {
			snippet = clip(r.Content, maxJinaSnippet)
		}
		hits = append(hits, SearchHit{
			Title:   r.Title,
			Link:    r.URL,
			Snippet: snippet,
		})
	}
	return truncateHits(hits, limit), nil
}

// maxJinaSnippet bounds snippets built from full page content.
const maxJinaSnippet = 400

func truncateHits(hits []SearchHit, limit int) []SearchHit {
	if limit > 0 && len(hits) > limit {
		return hits[:limit]
	}
	return hits
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
