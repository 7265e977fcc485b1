package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderScalarSubstitution(t *testing.T) {
	out := Render("Hi {{firstName}}, your diet is {{diet}}.", Values{"firstName": "Ana", "diet": "Keto"})
	require.Equal(t, "Hi Ana, your diet is Keto.", out)
}

func TestRenderUnknownTokenBecomesEmpty(t *testing.T) {
	out := Render("Hello {{firstName}}, you have {{unknownField}} days left", Values{"firstName": "Sam"})
	// The double space from the empty substitution is expected output.
	require.Equal(t, "Hello Sam, you have  days left", out)
}

func TestRenderLeavesNoPlaceholderSyntax(t *testing.T) {
	out := Render("{{a}} {{b}} {{#if x === 'y'}}{{c}}{{/if}} {{weird token}}", Values{})
	require.NotContains(t, out, "{{")
	require.NotContains(t, out, "}}")
}

func TestConditionalIfBranch(t *testing.T) {
	tpl := "{{#if diet === 'Lion'}}ruminant only{{else}}mixed{{/if}}"
	require.Equal(t, "ruminant only", Render(tpl, Values{"diet": "Lion"}))
	require.Equal(t, "mixed", Render(tpl, Values{"diet": "Keto"}))
}

func TestConditionalElseIfChainFirstMatchWins(t *testing.T) {
	tpl := "{{#if budget === 'tight'}}T{{else if budget === 'moderate'}}M{{else if budget === 'premium'}}P{{else}}?{{/if}}"
	require.Equal(t, "T", Render(tpl, Values{"budget": "tight"}))
	require.Equal(t, "M", Render(tpl, Values{"budget": "moderate"}))
	require.Equal(t, "P", Render(tpl, Values{"budget": "premium"}))
	require.Equal(t, "?", Render(tpl, Values{"budget": "lavish"}))
}

func TestConditionalNoBranchMatchesRendersEmpty(t *testing.T) {
	tpl := "a{{#if goal === 'cut'}}X{{else if goal === 'bulk'}}Y{{/if}}b"
	require.Equal(t, "ab", Render(tpl, Values{"goal": "maintain"}))
}

func TestMalformedConditionIsSilentlyFalse(t *testing.T) {
	for _, cond := range []string{
		"diet == 'Lion'",
		"diet === \"Lion\"",
		"diet",
		"diet === 'Lion' && budget === 'tight'",
		"!diet",
	} {
		tpl := "{{#if " + cond + "}}yes{{else}}no{{/if}}"
		require.Equal(t, "no", Render(tpl, Values{"diet": "Lion", "budget": "tight"}), "condition %q", cond)
	}
}

func TestConditionalBodySupportsPlaceholders(t *testing.T) {
	tpl := "{{#if diet === 'Keto'}}Target: {{calories}} kcal{{/if}}"
	out := Render(tpl, Values{"diet": "Keto", "calories": "1850"})
	require.Equal(t, "Target: 1850 kcal", out)
}

func TestMultipleBlocksInOneTemplate(t *testing.T) {
	tpl := strings.Join([]string{
		"{{#if a === '1'}}one{{/if}}",
		"{{#if b === '2'}}two{{else}}not-two{{/if}}",
	}, " | ")
	require.Equal(t, "one | not-two", Render(tpl, Values{"a": "1", "b": "3"}))
}
