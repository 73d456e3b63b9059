// Package compass builds citation-annotated career guidance reports from web
// search evidence and an LLM.
package compass

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/career-compass/internal/model"
)

// NoInformationMessage is the analysis returned when no search evidence was
// found.
const NoInformationMessage = "在网络搜索中未找到相关信息 (No relevant information found in web search)."

// Analyzer runs one profile through query construction, evidence collection,
// generation and citation reconciliation. It is safe for concurrent use.
type Analyzer struct {
	collector *Collector
	generator Generator
	location  string
}

// NewAnalyzer creates an Analyzer. location is appended to every search
// query when non-empty.
func NewAnalyzer(c *Collector, g Generator, location string) *Analyzer {
	return &Analyzer{collector: c, generator: g, location: location}
}

// Analyze produces a report for the profile. It returns ErrMajorRequired
// before any network call when the major is missing, and a *GenerationError
// when the LLM call fails. Search failures never surface.
func (a *Analyzer) Analyze(ctx context.Context, p model.Profile) (*model.Report, error) {
	queries, err := BuildQueries(p.Major, p.Interests, a.location)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(
		zap.String("analysis_id", uuid.NewString()),
		zap.String("major", p.Major),
		zap.Bool("has_resume", p.HasResume()),
	)
	log.Info("compass: analysis started", zap.Int("queries", len(queries)))
	start := time.Now()

	ev, err := a.collector.Collect(ctx, queries)
	if err != nil {
		return nil, eris.Wrap(err, "compass: collect evidence")
	}

	if ev.Empty() {
		log.Info("compass: no evidence found, skipping generation")
		return NoInformationReport(), nil
	}
	log.Info("compass: evidence collected", zap.Int("snippets", len(ev.Items)))

	prompt := BuildPrompt(p, ev)

	output, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Provider: a.generator.Name(), Err: err}
	}

	report := Reconcile(output, ev.Sources)
	log.Info("compass: analysis complete",
		zap.String("generator", a.generator.Name()),
		zap.Int("cited_sources", len(report.CitedSources)),
		zap.Int("available_sources", len(ev.Items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// NoInformationReport is the canned report for a profile with no evidence.
func NoInformationReport() *model.Report {
	return &model.Report{
		Narrative:     NoInformationMessage,
		CitedSources:  []model.EvidenceItem{},
		NoInformation: true,
	}
}
