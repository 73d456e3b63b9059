package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/career-compass/internal/compass"
	"github.com/sells-group/career-compass/internal/model"
)

var (
	analyzeMajor      string
	analyzeInterests  string
	analyzeResumePath string
	analyzeLanguage   string
)

// analyzeOutput mirrors the POST /analyze response body.
type analyzeOutput struct {
	Analysis string               `json:"analysis"`
	Sources  []model.EvidenceItem `json:"sources"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		profile, err := buildProfile(analyzeMajor, analyzeInterests, analyzeResumePath, analyzeLanguage)
		if err != nil {
			return err
		}

		analyzer, err := compass.New(ctx, cfg)
		if err != nil {
			return eris.Wrap(err, "analyze: init analyzer")
		}

		report, err := analyzer.Analyze(ctx, profile)
		if err != nil {
			return eris.Wrap(err, "analyze: run")
		}

		return writeReport(cmd.OutOrStdout(), report)
	},
}

// buildProfile assembles a profile from flag values. The resume file, when
// given, is read verbatim.
func buildProfile(major, interests, resumePath, language string) (model.Profile, error) {
	p := model.Profile{
		Major:     major,
		Interests: interests,
		Language:  language,
	}
	if resumePath != "" {
		b, err := os.ReadFile(resumePath)
		if err != nil {
			return p, eris.Wrapf(err, "analyze: read resume %s", resumePath)
		}
		p.ResumeText = string(b)
	}
	return p, nil
}

func writeReport(w io.Writer, report *model.Report) error {
	out := analyzeOutput{
		Analysis: report.Narrative,
		Sources:  report.CitedSources,
	}
	if out.Sources == nil {
		out.Sources = []model.EvidenceItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return eris.Wrap(err, "analyze: write report")
	}
	return nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMajor, "major", "", "major or field of study (required)")
	analyzeCmd.Flags().StringVar(&analyzeInterests, "interests", "", "research interests or skills")
	analyzeCmd.Flags().StringVar(&analyzeResumePath, "resume", "", "path to a plain-text resume")
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "en", "output language: en, zh-CN or zh-TW")
	_ = analyzeCmd.MarkFlagRequired("major")
	rootCmd.AddCommand(analyzeCmd)
}
