package model

import (
	"net/url"
	"strings"
)

// SourceCategory is a coarse classification of where an evidence link came from.
type SourceCategory string

// Source categories.
const (
	SourceLinkedIn  SourceCategory = "linkedin"
	SourceGlassdoor SourceCategory = "glassdoor"
	SourceIndeed    SourceCategory = "indeed"
	SourceOther     SourceCategory = "other"
)

// knownSources maps a registrable domain label to its category. Matching on
// the label covers country variants such as glassdoor.co.uk and uk.indeed.com.
var knownSources = map[string]SourceCategory{
	"linkedin":  SourceLinkedIn,
	"glassdoor": SourceGlassdoor,
	"indeed":    SourceIndeed,
}

// ClassifySource maps an evidence link to its SourceCategory. Links that
// cannot be parsed or match no known site are SourceOther.
func ClassifySource(link string) SourceCategory {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Hostname() == "" {
		return SourceOther
	}

	labels := strings.Split(strings.ToLower(u.Hostname()), ".")
	// The last label is the TLD and never identifies a site.
	for _, label := range labels[:len(labels)-1] {
		if cat, ok := knownSources[label]; ok {
			return cat
		}
	}
	return SourceOther
}

// EvidenceItem is one search snippet tagged with its citation identifier.
type EvidenceItem struct {
	CitationID int            `json:"id"`
	Snippet    string         `json:"-"`
	Title      string         `json:"title"`
	Link       string         `json:"link"`
	Category   SourceCategory `json:"source_type"`
}

// SourceMap resolves citation identifiers to their evidence within one request.
type SourceMap map[int]EvidenceItem

// Evidence is the result of collecting search snippets for one request.
type Evidence struct {
	// Items in citation order; Items[i].CitationID == i+1.
	Items   []EvidenceItem
	Sources SourceMap
	// Context holds the "[Source ID: N] <snippet>" blocks, newline separated.
	Context string
}

// Empty reports whether no evidence was collected.
func (e *Evidence) Empty() bool {
	return e == nil || len(e.Items) == 0
}
