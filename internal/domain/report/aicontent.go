package report

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	apperrors "github.com/primalpath/report-engine/pkg/errors"
	"github.com/primalpath/report-engine/pkg/metrics"
)

const (
	summaryMaxTokensDefault  = 2000
	obstacleMaxTokensDefault = 2500

	// Free-text fields are capped before prompt assembly so a pathological
	// submission cannot blow the completion budget.
	maxFreeTextChars = 2000
)

const summarySystemPrompt = `You are a senior nutrition coach writing the opening section of a paid, personalized diet report. Write a warm, specific executive summary in markdown: greet the client by name, restate their goal and protocol in your own words, explain what their macro targets mean for day-to-day eating, and set expectations for the first 30 days. Start with a "## " heading. Do not invent data that is not in the profile. Never recommend any food the profile says to avoid.`

const obstacleSystemPrompt = `You are a senior nutrition coach writing the "Obstacle Override" section of a paid, personalized diet report. Using the client's stated biggest challenge, symptoms, and schedule, write a concrete markdown playbook: name the obstacle, explain why it derails people on this protocol, and give numbered, specific countermoves the client can use this week. Start with a "## " heading. Never recommend any food the profile says to avoid.`

// AIContent holds the two truly personalized narrative sections.
type AIContent struct {
	Summary  string
	Obstacle string
}

// generateAIContent issues the two completion calls sequentially. Any failure
// aborts the whole report; there is no partial-report fallback.
func (s *Service) generateAIContent(ctx context.Context, q Questionnaire) (AIContent, metrics.TokenUsage, error) {
	var usage metrics.TokenUsage
	profile := buildProfile(q)

	summary, err := s.complete(ctx, CompletionRequest{
		System:      summarySystemPrompt,
		Prompt:      profile + "\n\nWrite the executive summary now.",
		MaxTokens:   s.summaryBudget(),
		Temperature: s.cfg.Temperature,
	}, &usage)
	if err != nil {
		return AIContent{}, usage, err
	}

	obstacle, err := s.complete(ctx, CompletionRequest{
		System:      obstacleSystemPrompt,
		Prompt:      profile + "\n\nWrite the obstacle override plan now.",
		MaxTokens:   s.obstacleBudget(),
		Temperature: s.cfg.Temperature,
	}, &usage)
	if err != nil {
		return AIContent{}, usage, err
	}

	return AIContent{Summary: summary, Obstacle: obstacle}, usage, nil
}

func (s *Service) complete(ctx context.Context, req CompletionRequest, usage *metrics.TokenUsage) (string, error) {
	promptTokens := countTokens(req.System) + countTokens(req.Prompt)
	usage.Add(metrics.TokenUsage{PromptTokens: promptTokens, TotalTokens: promptTokens})

	content, err := s.completions.Complete(ctx, req)
	if err != nil {
		// The wrapped message stays generic; upstream errors may echo
		// request details but never credentials.
		return "", apperrors.Wrap("llm_error", "completion request failed", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", apperrors.Wrap("llm_error", "completion returned no content", nil)
	}

	completionTokens := countTokens(content)
	usage.Add(metrics.TokenUsage{CompletionTokens: completionTokens, TotalTokens: completionTokens})
	return content, nil
}

func (s *Service) summaryBudget() int {
	if s.cfg.SummaryMaxTokens > 0 {
		return s.cfg.SummaryMaxTokens
	}
	return summaryMaxTokensDefault
}

func (s *Service) obstacleBudget() int {
	if s.cfg.ObstacleMaxTokens > 0 {
		return s.cfg.ObstacleMaxTokens
	}
	return obstacleMaxTokensDefault
}

// buildProfile serializes the questionnaire subset the model needs, with an
// explicit avoid-foods directive so completions never recommend disallowed
// ingredients.
func buildProfile(q Questionnaire) string {
	var b strings.Builder
	b.WriteString("Client profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", q.FirstName)
	fmt.Fprintf(&b, "- Protocol: %s\n", q.SelectedProtocol)
	fmt.Fprintf(&b, "- Goal: %s\n", q.GoalText())
	fmt.Fprintf(&b, "- Budget tier: %s\n", q.Budget)
	if q.Weight > 0 {
		fmt.Fprintf(&b, "- Current weight: %.0f lbs\n", q.Weight)
	}
	fmt.Fprintf(&b, "- Daily targets: %.0f kcal, %.0fg protein, %.0fg fat, %.0fg carbs\n",
		q.Macros.Calories, q.Macros.Protein, q.Macros.Fat, q.Macros.Carbs)
	if q.Macros.ActivityLevel != "" {
		fmt.Fprintf(&b, "- Activity level: %s\n", q.Macros.ActivityLevel)
	}
	if q.MealPrepTime != "" {
		fmt.Fprintf(&b, "- Time available for meal prep: %s\n", q.MealPrepTime)
	}
	if q.DairyTolerance != "" {
		fmt.Fprintf(&b, "- Dairy tolerance: %s\n", q.DairyTolerance)
	}
	if len(q.Conditions) > 0 {
		fmt.Fprintf(&b, "- Health conditions: %s\n", strings.Join(q.Conditions, ", "))
	}
	if len(q.Medications) > 0 {
		fmt.Fprintf(&b, "- Medications: %s\n", strings.Join(q.Medications, ", "))
	}
	if len(q.Symptoms) > 0 {
		fmt.Fprintf(&b, "- Current symptoms: %s\n", strings.Join(q.Symptoms, ", "))
	}
	if q.BiggestChallenge != "" {
		fmt.Fprintf(&b, "- Biggest challenge: %s\n", truncateText(q.BiggestChallenge, maxFreeTextChars))
	}
	if q.AdditionalNotes != "" {
		fmt.Fprintf(&b, "- Additional notes: %s\n", truncateText(q.AdditionalNotes, maxFreeTextChars))
	}

	restricted := restrictedFoods(q)
	if restricted != "" {
		fmt.Fprintf(&b, "\nIMPORTANT: the client must absolutely avoid these foods. Never mention or recommend them: %s\n", restricted)
	}
	return b.String()
}

func restrictedFoods(q Questionnaire) string {
	var parts []string
	if strings.TrimSpace(q.Allergies) != "" {
		parts = append(parts, "allergies: "+strings.TrimSpace(q.Allergies))
	}
	if avoid := q.AvoidText(); avoid != "" {
		parts = append(parts, "avoid list: "+avoid)
	}
	return strings.Join(parts, "; ")
}

func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	// Back up to a rune boundary so the cut never splits a multi-byte char.
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return strings.TrimSpace(text[:cut]) + "..."
}

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

// countTokens measures prompt size for usage logging. The encoder fetch can
// fail offline, so fall back to the usual chars/4 estimate rather than
// failing a report over bookkeeping.
func countTokens(text string) int {
	encoderOnce.Do(func() {
		encoder, _ = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	})
	if encoder == nil {
		return len(text) / 4
	}
	return len(encoder.Encode(text, nil, nil))
}
