package compass

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/career-compass/internal/model"
)

// Collector runs queries against a Searcher and tags every snippet with a
// citation identifier.
type Collector struct {
	searcher Searcher
	limit    int
	delay    time.Duration
}

// NewCollector creates a Collector that asks for at most limit hits per query
// and waits at least delay between consecutive searches.
func NewCollector(s Searcher, limit int, delay time.Duration) *Collector {
	return &Collector{searcher: s, limit: limit, delay: delay}
}

// Collect issues the queries one at a time. A failed search is logged and
// contributes nothing; only context cancellation stops collection early.
// Citation identifiers start at 1 and increase across all queries.
func (c *Collector) Collect(ctx context.Context, queries []Query) (*model.Evidence, error) {
	ev := &model.Evidence{Sources: model.SourceMap{}}

	// Burst of one: the first search goes out immediately, later ones are paced.
	pace := rate.NewLimiter(rate.Every(c.delay), 1)
	if c.delay <= 0 {
		pace = rate.NewLimiter(rate.Inf, 1)
	}

	var blocks []string
	for _, q := range queries {
		if err := pace.Wait(ctx); err != nil {
			return ev, eris.Wrap(err, "compass: pace search")
		}

		log := zap.L().With(zap.String("query_kind", string(q.Kind)), zap.String("query", q.Text))

		hits, err := c.searcher.Search(ctx, q.Text, c.limit)
		if err != nil {
			if ctx.Err() != nil {
				return ev, eris.Wrap(ctx.Err(), "compass: search canceled")
			}
			log.Warn("compass: search failed, skipping query", zap.Error(err))
			continue
		}

		added := 0
		for _, h := range hits {
			snippet := strings.TrimSpace(h.Snippet)
			if snippet == "" {
				continue
			}
			item := model.EvidenceItem{
				CitationID: len(ev.Items) + 1,
				Snippet:    snippet,
				Title:      strings.TrimSpace(h.Title),
				Link:       strings.TrimSpace(h.Link),
				Category:   model.ClassifySource(h.Link),
			}
			ev.Items = append(ev.Items, item)
			ev.Sources[item.CitationID] = item
			blocks = append(blocks, fmt.Sprintf("[Source ID: %d] %s", item.CitationID, snippet))
			added++
		}
		log.Debug("compass: search complete", zap.Int("hits", len(hits)), zap.Int("evidence", added))
	}

	ev.Context = strings.Join(blocks, "\n")
	return ev, nil
}
