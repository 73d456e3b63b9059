package model

import "strings"

// Profile is the caller's academic background.
type Profile struct {
	Major      string `json:"major"`
	Interests  string `json:"interests,omitempty"`
	ResumeText string `json:"resumeText,omitempty"`
	Language   string `json:"language,omitempty"`
}

// HasResume reports whether resume text was supplied.
func (p Profile) HasResume() bool {
	return strings.TrimSpace(p.ResumeText) != ""
}

// Report is the citation-annotated guidance returned to the caller.
type Report struct {
	Narrative     string         `json:"analysis"`
	CitedSources  []EvidenceItem `json:"sources"`
	NoInformation bool           `json:"-"`
}
