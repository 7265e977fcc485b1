package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Render converts report markdown to HTML in a single forward pass over
// lines. Three mutually exclusive block modes exist (paragraph, list, table);
// classifying a line flushes any open mode before a new one starts. This is
// not a general markdown parser and must not become one: the templates are
// hand-authored against exactly these rules.
func Render(md string) string {
	var (
		b       strings.Builder
		para    []string
		inList  bool
		inTable bool
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		b.WriteString("<p>" + inline(strings.Join(para, " ")) + "</p>\n")
		para = nil
	}
	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}
	closeTable := func() {
		if inTable {
			b.WriteString("</table>\n")
			inTable = false
		}
	}
	flushAll := func() {
		flushPara()
		closeList()
		closeTable()
	}

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushAll()

		case isRule(trimmed):
			flushAll()
			b.WriteString("<hr>\n")

		case strings.HasPrefix(trimmed, "#"):
			flushAll()
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			text := strings.TrimSpace(trimmed[level:])
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, inline(text), level)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flushPara()
			closeTable()
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>" + inline(trimmed[2:]) + "</li>\n")

		case strings.HasPrefix(trimmed, "|"):
			flushPara()
			closeList()
			if !inTable {
				b.WriteString("<table>\n")
				inTable = true
			}
			cells := splitRow(trimmed)
			if suppressRow(cells) {
				continue
			}
			b.WriteString("<tr>")
			for _, cell := range cells {
				b.WriteString("<td>" + inline(cell) + "</td>")
			}
			b.WriteString("</tr>\n")

		default:
			closeList()
			closeTable()
			para = append(para, trimmed)
		}
	}
	flushAll()

	return b.String()
}

func isRule(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// suppressRow drops alignment separators and the checkbox-placeholder rows
// templates leave behind when no data filled them in. Content quality
// feature, not a bug.
func suppressRow(cells []string) bool {
	if len(cells) == 0 {
		return true
	}
	separator := true
	placeholder := true
	for _, cell := range cells {
		if cell == "" {
			separator = false
			continue
		}
		if strings.Trim(cell, "-:") != "" {
			separator = false
		}
		if strings.Trim(cell, "☐ \t") != "" {
			placeholder = false
		}
	}
	return separator || placeholder
}

// Inline pass ordering matters: images before links so the link pattern never
// half-matches an image, bold before italic so ** is consumed first.
var (
	imageRe  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
)

func inline(text string) string {
	text = imageRe.ReplaceAllString(text, `<img src="$2" alt="$1">`)
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	text = codeRe.ReplaceAllString(text, "<code>$1</code>")
	text = linkRe.ReplaceAllString(text, `<a href="$2">$1</a>`)
	return text
}
