package report

import (
	"sort"
	"strings"
)

// Combine concatenates the present sections in ascending index order, with
// "\n\n" before the first section and "\n\n---\n\n" between subsequent ones.
// Missing indices are skipped; a sparse map is not an error.
func Combine(sections map[int]string) string {
	indices := make([]int, 0, len(sections))
	for idx := range sections {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var b strings.Builder
	for i, idx := range indices {
		if i == 0 {
			b.WriteString("\n\n")
		} else {
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString(sections[idx])
	}
	return b.String()
}
