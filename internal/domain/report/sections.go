package report

import (
	"embed"
	"fmt"

	"github.com/primalpath/report-engine/internal/domain/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// SectionCount is the fixed number of report sections. Sections 1 and 6 are
// LLM-generated; every other index maps to a static markdown template.
const SectionCount = 13

const (
	sectionSummary  = 1
	sectionObstacle = 6
)

var templateSections = map[int]string{
	2:  "macro_targets.md",
	3:  "protocol_overview.md",
	4:  "meal_plan.md",
	5:  "grocery_lists.md",
	7:  "approved_foods.md",
	8:  "foods_to_avoid.md",
	9:  "health_notes.md",
	10: "meal_prep.md",
	11: "troubleshooting.md",
	12: "progress_tracking.md",
	13: "next_steps.md",
}

// renderTemplateSections stamps the placeholder map into every static
// section. The only possible failure is a missing embedded file, which is a
// build defect, not a runtime condition.
func renderTemplateSections(values template.Values) (map[int]string, error) {
	sections := make(map[int]string, len(templateSections))
	for idx, name := range templateSections {
		raw, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read section template %s: %w", name, err)
		}
		sections[idx] = template.Render(string(raw), values)
	}
	return sections, nil
}
