package markdown

import (
	"fmt"
	"strings"
	"time"
)

const defaultTitle = "Your Personalized Protocol"

// Document renders markdown and wraps it in the fixed print shell: cover page
// with logo and generation date, page-break CSS, and the report body. The
// first H1 of the content is stripped because the cover page supplies the
// title.
func Document(md string, generatedAt time.Time) string {
	title, body := extractTitle(md)
	return fmt.Sprintf(shell, title, title, generatedAt.Format("January 2, 2006"), Render(body))
}

// extractTitle removes the first H1 line and returns its text as the cover
// title, falling back to a fixed title when the content has no H1.
func extractTitle(md string) (string, string) {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "##") {
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			rest := append(append([]string{}, lines[:i]...), lines[i+1:]...)
			return title, strings.Join(rest, "\n")
		}
	}
	return defaultTitle, md
}

const shell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
  @page { size: letter; margin: 2cm; }
  body { font-family: Georgia, 'Times New Roman', serif; color: #1c1c1c; line-height: 1.55; max-width: 46em; margin: 0 auto; padding: 2em; }
  h1, h2, h3 { font-family: 'Helvetica Neue', Arial, sans-serif; color: #7a2e1d; page-break-after: avoid; }
  h1 { font-size: 2em; border-bottom: 3px solid #7a2e1d; padding-bottom: 0.2em; }
  h2 { font-size: 1.4em; margin-top: 1.6em; }
  hr { border: none; border-top: 1px solid #d8cfc7; margin: 2.5em 0; page-break-after: always; }
  table { border-collapse: collapse; width: 100%%; margin: 1em 0; }
  td { border: 1px solid #d8cfc7; padding: 0.5em 0.75em; }
  ul { padding-left: 1.4em; }
  img { max-width: 100%%; }
  .cover { text-align: center; page-break-after: always; padding-top: 6em; }
  .cover .logo { font-family: 'Helvetica Neue', Arial, sans-serif; font-size: 1.1em; letter-spacing: 0.35em; text-transform: uppercase; color: #7a2e1d; }
  .cover h1 { border: none; font-size: 2.6em; margin-top: 1.2em; }
  .cover .date { color: #6b6258; margin-top: 3em; }
  @media print { body { padding: 0; } }
</style>
</head>
<body>
<div class="cover">
  <div class="logo">Primal Path</div>
  <h1>%s</h1>
  <div class="date">Prepared %s</div>
</div>
%s</body>
</html>
`
