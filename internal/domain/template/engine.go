package template

import "regexp"

// Values maps placeholder names to replacement text.
type Values map[string]string

var (
	condBlockRe  = regexp.MustCompile(`(?s)\{\{#if\s+(.*?)\}\}(.*?)\{\{/if\}\}`)
	elseMarkerRe = regexp.MustCompile(`(?s)\{\{else(?: if\s+(.*?))?\}\}`)
	condExprRe   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*===\s*'([^']*)'\s*$`)
	tokenRe      = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)
	anyTokenRe   = regexp.MustCompile(`\{\{[^{}]*\}\}`)
)

// Render stamps data into a template. Three passes, in order: single-level
// {{#if}}/{{else if}}/{{else}}/{{/if}} conditionals, scalar {{name}}
// substitution, then a final pass blanking every unmatched {{...}} token.
// Rendering never fails; unknown placeholders resolve to the empty string.
//
// Conditions support exactly one grammar: identifier === 'literal'. Anything
// else evaluates false with no error. Template authors have been bitten by
// this, but downstream templates depend on the exact behavior, so it stays.
func Render(tpl string, data Values) string {
	out := condBlockRe.ReplaceAllStringFunc(tpl, func(block string) string {
		m := condBlockRe.FindStringSubmatch(block)
		return resolveConditional(m[1], m[2], data)
	})

	out = tokenRe.ReplaceAllStringFunc(out, func(tok string) string {
		name := tokenRe.FindStringSubmatch(tok)[1]
		if v, ok := data[name]; ok {
			return v
		}
		return tok
	})

	return anyTokenRe.ReplaceAllString(out, "")
}

type branch struct {
	cond   string
	body   string
	isElse bool
}

// resolveConditional splits a block body on its else markers and returns the
// body of the first branch whose condition holds, in source order, or the
// trailing else, or the empty string.
func resolveConditional(cond, body string, data Values) string {
	branches := []branch{{cond: cond}}
	markers := elseMarkerRe.FindAllStringSubmatchIndex(body, -1)

	prevEnd := 0
	for _, m := range markers {
		branches[len(branches)-1].body = body[prevEnd:m[0]]
		next := branch{}
		if m[2] >= 0 {
			next.cond = body[m[2]:m[3]]
		} else {
			next.isElse = true
		}
		branches = append(branches, next)
		prevEnd = m[1]
	}
	branches[len(branches)-1].body = body[prevEnd:]

	for _, b := range branches {
		if b.isElse || evalCondition(b.cond, data) {
			return b.body
		}
	}
	return ""
}

func evalCondition(cond string, data Values) bool {
	m := condExprRe.FindStringSubmatch(cond)
	if m == nil {
		return false
	}
	return data[m[1]] == m[2]
}
