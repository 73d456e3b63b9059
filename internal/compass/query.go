package compass

import (
	"strings"
)

// QueryKind labels what a search query is meant to surface.
type QueryKind string

// Query kinds, in the order they are issued.
const (
	QueryProfessionals QueryKind = "professionals"
	QuerySalary        QueryKind = "salary"
	QueryJobs          QueryKind = "jobs"
	QueryFounders      QueryKind = "founders"
)

// Query is one search string and what it targets.
type Query struct {
	Kind QueryKind
	Text string
}

// BuildQueries builds the fixed set of search queries for a major and
// optional interests. A non-empty location is appended to every query.
func BuildQueries(major, interests, location string) ([]Query, error) {
	major = phraseText(major)
	if major == "" {
		return nil, ErrMajorRequired
	}

	subject := `"` + major + `"`
	if in := phraseText(interests); in != "" {
		subject += ` AND "` + in + `"`
	}

	geo := ""
	if loc := phraseText(location); loc != "" {
		geo = ` "` + loc + `"`
	}

	return []Query{
		{QueryProfessionals, subject + ` "Research Scientist" OR "Product Manager" OR "Data Scientist" site:linkedin.com` + geo},
		{QuerySalary, subject + " salary site:glassdoor.com OR site:levels.fyi" + geo},
		{QueryJobs, subject + " jobs site:indeed.com" + geo},
		{QueryFounders, "(" + subject + ") founder OR startup site:techcrunch.com OR site:ycombinator.com" + geo},
	}, nil
}

// phraseText prepares s for use inside a quoted search phrase. Search
// engines have no escape for an inner quote, so quotes are dropped and
// whitespace collapsed.
func phraseText(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, `"`, " ")), " ")
}
