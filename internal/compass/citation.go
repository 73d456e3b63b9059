package compass

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/career-compass/internal/model"
)

// referencesHeading matches a trailing markdown heading left over from a
// references section, including a bare "###" written before the separator.
var referencesHeading = regexp.MustCompile(`(?i)(?:^|\n)[ \t]*#{1,6}[ \t]*(?:\d+\.?[ \t]*)?(?:references?|sources)?[ \t:]*$`)

// citationPattern matches a verbose citation marker such as [Source ID: 12].
// Markers with a non-numeric identifier do not match and are left alone.
var citationPattern = regexp.MustCompile(`\[Source ID:\s*(\d+)\s*\]`)

// ExtractCitedIDs returns the identifiers cited in text, in order of first
// appearance, without duplicates.
func ExtractCitedIDs(text string) []int {
	matches := citationPattern.FindAllStringSubmatch(text, -1)
	ids := make([]int, 0, len(matches))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// CompactMarkers rewrites every [Source ID: N] marker to [N].
func CompactMarkers(text string) string {
	return citationPattern.ReplaceAllString(text, "[$1]")
}

// SplitReferences splits model output at the first references separator.
// ok is false when the separator is absent, in which case narrative is the
// whole text.
func SplitReferences(text string) (narrative, references string, ok bool) {
	return strings.Cut(text, ReferencesSeparator)
}

// Reconcile turns raw model output into a Report. Only identifiers listed in
// the references block and present in sources are returned; anything else
// the model cited is dropped.
func Reconcile(output string, sources model.SourceMap) *model.Report {
	narrative, references, ok := SplitReferences(output)

	cited := []model.EvidenceItem{}
	if ok {
		var dropped []int
		for _, id := range ExtractCitedIDs(references) {
			item, found := sources[id]
			if !found {
				dropped = append(dropped, id)
				continue
			}
			cited = append(cited, item)
		}
		if len(dropped) > 0 {
			zap.L().Debug("compass: dropped unknown citation ids", zap.Ints("ids", dropped))
		}
	} else {
		zap.L().Debug("compass: model output has no references block")
	}

	return &model.Report{
		Narrative:    trimReferencesHeading(CompactMarkers(narrative)),
		CitedSources: cited,
	}
}

// trimReferencesHeading trims the narrative and drops a dangling
// references heading at its end.
func trimReferencesHeading(narrative string) string {
	narrative = strings.TrimSpace(narrative)
	return strings.TrimSpace(referencesHeading.ReplaceAllString(narrative, ""))
}
