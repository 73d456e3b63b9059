package compass

import (
	"strings"

	"github.com/sells-group/career-compass/internal/model"
)

// Placeholders substituted for absent profile fields.
const (
	InterestsPlaceholder = "Not provided"
	ResumePlaceholder    = "No resume provided."
)

// ReferencesSeparator opens the trailing references block of a report.
const ReferencesSeparator = "---REFERENCES---"

const reportPrompt = `As 'Academic Compass', you are a top-tier career planning mentor. Your mission is to analyze the provided academic background and web search evidence to map out potential career paths for the user.
**You must write the entire response strictly in {output_language}.**

**Information Provided:**
1.  **Major/Field of Study:** {major}
2.  **Research Interests/Skills:** {interests}
3.  **Web Search Evidence:** Each snippet is tagged with its source identifier.
    ` + "```" + `
{search_context}
    ` + "```" + `
4.  **Applicant's Resume/Bio:**
    ` + "```" + `
{resume_text}
    ` + "```" + `

**Citation Rules (mandatory):**
- Every factual claim taken from the evidence MUST be followed by a citation marker of the exact form [Source ID: N].
- Put exactly one identifier in each pair of brackets. When a sentence relies on several sources, write adjacent markers such as [Source ID: 1][Source ID: 4]. Never write [Source ID: 1, 4].
- Only cite identifiers that appear in the evidence above. Never invent identifiers.

**Report Structure (use these sections, in this order):**

### 1. Career Path Analysis
Describe 2-3 distinct career paths that fit this background. For each, give it a fitting title, explain the role and its core responsibilities, and cite real-world examples from the evidence.

### 2. Market & Salary Insights
Summarize salary ranges, demand and hiring trends found in the evidence, with citations.

### 3. Personalized Match Analysis
If and only if a resume is provided, assess how well the applicant's background matches each path and give 2-3 concrete suggestions to strengthen the resume. If no resume is provided, state only: "Provide a resume for personalized analysis."

### 4. Final Recommendation
Recommend the most promising path and the next concrete steps.

**Closing references block:**
After the Final Recommendation, write a line containing exactly ` + ReferencesSeparator + ` and nothing else, with no heading markup or numbering. Below that line, list only the identifiers you actually cited in the report, one per line, in the form:
[Source ID: N] <title of the source>
`

// BuildPrompt formats the generation prompt for a profile and its collected
// evidence. The resume text is embedded verbatim.
func BuildPrompt(p model.Profile, ev *model.Evidence) string {
	interests := strings.TrimSpace(p.Interests)
	if interests == "" {
		interests = InterestsPlaceholder
	}

	resume := p.ResumeText
	if !p.HasResume() {
		resume = ResumePlaceholder
	}

	searchContext := ""
	if ev != nil {
		searchContext = ev.Context
	}

	// NewReplacer does a single pass, so user text containing a placeholder
	// is never expanded.
	r := strings.NewReplacer(
		"{output_language}", OutputLanguage(p.Language),
		"{major}", strings.TrimSpace(p.Major),
		"{interests}", interests,
		"{search_context}", searchContext,
		"{resume_text}", resume,
	)
	return r.Replace(reportPrompt)
}
