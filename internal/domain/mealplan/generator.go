package mealplan

import (
	"fmt"
	"strings"

	"github.com/primalpath/report-engine/internal/domain/catalog"
)

// Generate produces the 4x7 meal grid for the given diet, budget tier, and
// free-text restrictions. Output is fully deterministic: day d's main protein
// is proteins[d mod N], its alternate proteins[(d+1) mod N], which guarantees
// every admissible protein appears and the rotation is repeatable.
func Generate(diet, budget, allergyText, avoidText string) Plan {
	res := catalog.Filter(catalog.GroupProtein, diet, budget, allergyText, avoidText)
	return buildPlan(res.Items, diet, res.Warning)
}

func buildPlan(proteins []catalog.FoodItem, diet, warning string) Plan {
	if len(proteins) == 0 {
		return Plan{Warning: fmt.Sprintf(
			"no proteins are compatible with the %s protocol and your restrictions; adjust your allergy or avoid list", diet)}
	}

	n := len(proteins)
	plan := Plan{Warning: warning}
	for w := 1; w <= 4; w++ {
		week := Week{Number: w, Days: make([]Day, 0, 7)}
		for dayOfWeek := 1; dayOfWeek <= 7; dayOfWeek++ {
			d := (w-1)*7 + dayOfWeek
			main := proteins[d%n]
			alt := proteins[(d+1)%n]
			breakfast, lunch, dinner := mealsFor(diet, main.Name, alt.Name)
			week.Days = append(week.Days, Day{
				Number:    d,
				Breakfast: breakfast,
				Lunch:     lunch,
				Dinner:    dinner,
			})
		}
		plan.Weeks = append(plan.Weeks, week)
	}
	return plan
}

// mealsFor selects one of the five fixed meal patterns by diet family. Each
// pattern is a pure function of the two protein names.
func mealsFor(diet, main, alt string) (breakfast, lunch, dinner string) {
	switch {
	case strings.Contains(diet, "Lion"):
		meal := main + " + Salt"
		return meal, meal, meal
	case diet == catalog.DietStrictCarnivore:
		return main + " + Eggs", main, alt + " + Butter"
	case diet == catalog.DietPescatarian:
		return alt + " + Eggs", main, main + " + Butter"
	case diet == catalog.DietKeto:
		return main + " + Eggs cooked in Butter",
			main + " + Leafy Greens with Olive Oil",
			alt + " + Roasted Vegetables in Avocado Oil"
	default:
		return main + " + Eggs", alt, main + " + Butter"
	}
}
