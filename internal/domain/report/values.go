package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/primalpath/report-engine/internal/domain/mealplan"
	"github.com/primalpath/report-engine/internal/domain/template"
)

// dietProse carries the static narrative fragments keyed by protocol. Lookups
// fall back to the Carnivore entry for unknown protocols.
type dietProse struct {
	Description string
	WhyItWorks  string
	FirstWeek   string
}

var dietProseTable = map[string]dietProse{
	"Lion": {
		Description: "The Lion protocol is the strictest elimination template: ruminant meat, salt, and water, nothing else.",
		WhyItWorks:  "By removing every plant compound and every non-ruminant protein at once, the Lion protocol gives your gut and immune system the quietest possible baseline to heal against.",
		FirstWeek:   "Expect an adaptation dip around days 3-5. Salt your meat generously and keep meals large; hunger on Lion is a signal to eat more meat, not to snack.",
	},
	"Strict Carnivore": {
		Description: "Strict Carnivore keeps every animal food on the table — meat, eggs, and butter — while excluding all plants.",
		WhyItWorks:  "Animal foods supply complete protein and every essential nutrient in bioavailable form, so you can eliminate plant irritants without creating deficiencies.",
		FirstWeek:   "Front-load fat in your first week: butter and egg yolks keep energy stable while your metabolism shifts away from glucose.",
	},
	"Carnivore": {
		Description: "The Carnivore protocol covers the full animal kingdom: red meat, pork, poultry, fish, and eggs.",
		WhyItWorks:  "Meat-based eating stabilizes blood sugar, removes the most common dietary irritants, and makes protein targets almost automatic.",
		FirstWeek:   "Rotate proteins daily so no single food dominates, and drink more water than usual — dropping carbohydrate sheds retained water fast.",
	},
	"Keto": {
		Description: "The Keto protocol pairs animal proteins with low-carb vegetables and added fats, holding net carbs low enough to stay in ketosis.",
		WhyItWorks:  "Keeping carbohydrate under your threshold switches your primary fuel to fat, which flattens energy swings and blunts cravings.",
		FirstWeek:   "Track your carbs precisely for the first week — hidden sugars in sauces and dressings are the usual reason ketosis stalls.",
	},
	"Pescatarian": {
		Description: "The Pescatarian protocol builds your plate around fish, shellfish, and eggs.",
		WhyItWorks:  "Cold-water fish delivers the highest omega-3 density of any protein source, supporting the anti-inflammatory goals of this program.",
		FirstWeek:   "Buy fish twice a week rather than once; freshness drives both flavor and how easy this protocol is to stick to.",
	},
}

func proseFor(diet string) dietProse {
	if p, ok := dietProseTable[diet]; ok {
		return p
	}
	return dietProseTable["Carnivore"]
}

// buildValues assembles the full placeholder map consumed by the 11 template
// sections: identity fields, restriction summaries with their documented
// defaults, macro numbers, all 30 day slots, and the 4 grocery weeks.
func buildValues(q Questionnaire, plan mealplan.Plan, groceries mealplan.GroceryList, now time.Time) template.Values {
	v := template.Values{
		"date":             now.Format("January 2, 2006"),
		"firstName":        q.FirstName,
		"email":            q.Email,
		"diet":             q.SelectedProtocol,
		"goal":             q.GoalText(),
		"budget":           q.Budget,
		"mealPrepTime":     q.MealPrepTime,
		"dairyTolerance":   q.DairyTolerance,
		"biggestChallenge": q.BiggestChallenge,
		"additionalNotes":  q.AdditionalNotes,
		"activityLevel":    q.Macros.ActivityLevel,
		"planWarning":      plan.Warning,

		"allergySummary":    defaultIfEmpty(q.Allergies, "None reported"),
		"avoidSummary":      defaultIfEmpty(q.AvoidText(), "None"),
		"medicationSummary": joinOrDefault(q.Medications, "None reported"),
		"conditionSummary":  joinOrDefault(q.Conditions, "None reported"),
		"symptomSummary":    joinOrDefault(q.Symptoms, "None reported"),

		"calories": formatMacro(q.Macros.Calories),
		"protein":  formatMacro(q.Macros.Protein),
		"fat":      formatMacro(q.Macros.Fat),
		"carbs":    formatMacro(q.Macros.Carbs),
	}

	if q.Weight > 0 {
		v["weight"] = strconv.FormatFloat(q.Weight, 'f', -1, 64)
	} else {
		v["weight"] = ""
	}

	prose := proseFor(q.SelectedProtocol)
	v["dietDescription"] = prose.Description
	v["dietWhyItWorks"] = prose.WhyItWorks
	v["dietFirstWeek"] = prose.FirstWeek

	// Days 1-30. The grid is 28 slots; days 29 and 30 alias days 1 and 2
	// through the modulo cycle. Templates reference breakfast29/breakfast30
	// expecting exactly this, so it is not an off-by-one to fix.
	if len(plan.Weeks) > 0 {
		for day := 1; day <= 30; day++ {
			wk := ((day - 1) / 7) % len(plan.Weeks)
			dy := (day - 1) % 7
			if dy >= len(plan.Weeks[wk].Days) {
				continue
			}
			slot := plan.Weeks[wk].Days[dy]
			n := strconv.Itoa(day)
			v["breakfast"+n] = slot.Breakfast
			v["lunch"+n] = slot.Lunch
			v["dinner"+n] = slot.Dinner
		}
	}

	for _, wk := range groceries.Weeks {
		n := strconv.Itoa(wk.Number)
		v["protein1Week"+n] = wk.Protein1
		v["protein2Week"+n] = wk.Protein2
		v["fatWeek"+n] = wk.Fat
		v["pantryWeek"+n] = wk.Pantry
	}

	return v
}

func defaultIfEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOrDefault(items []string, def string) string {
	var kept []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, strings.TrimSpace(item))
		}
	}
	if len(kept) == 0 {
		return def
	}
	return strings.Join(kept, ", ")
}

func formatMacro(val float64) string {
	if val == 0 {
		return "0"
	}
	return fmt.Sprintf("%.0f", val)
}
