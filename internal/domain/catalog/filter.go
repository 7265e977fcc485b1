package catalog

import (
	"fmt"
	"strings"
)

// allergyKeywords maps a recognized allergy category to the name/category
// substrings that mark an item as belonging to it. Matching is deliberately
// loose: "beef" also hits "Beef Liver" and "Beef Tallow". Downstream
// fallbacks are tuned against exactly this behavior, so keep it.
var allergyKeywords = map[string][]string{
	"dairy":     {"butter", "ghee", "cream", "milk", "cheese", "dairy"},
	"egg":       {"egg"},
	"fish":      {"fish", "salmon", "sardine", "mackerel", "cod", "anchovy"},
	"shellfish": {"shellfish", "shrimp", "scallop", "crab", "lobster", "oyster"},
	"pork":      {"pork", "bacon", "ham"},
	"beef":      {"beef", "tallow"},
	"lamb":      {"lamb"},
}

// Filter returns the admissible subset of the catalog group for the given
// diet, budget tier, and free-text restrictions. It degrades in three tiers
// rather than erroring: requested diet, then Carnivore with restrictions
// still applied, then the whole group with restrictions ignored. The result
// is tagged so callers can surface a warning when restrictions were dropped.
func Filter(group Group, diet, budget, allergyText, avoidText string) Result {
	return filterItems(ByGroup(group), diet, budget, allergyText, avoidText)
}

func filterItems(pool []FoodItem, diet, budget, allergyText, avoidText string) Result {
	admitted := admissible(pool, diet, budget, allergyText, avoidText)
	if len(admitted) > 0 {
		return Result{Items: admitted, DegradedTo: DegradedNone}
	}

	admitted = admissible(pool, DietCarnivore, budget, allergyText, avoidText)
	if len(admitted) > 0 {
		return Result{
			Items:      admitted,
			DegradedTo: DegradedCarnivore,
			Warning:    fmt.Sprintf("no %s foods matched your restrictions; using the Carnivore food list instead", diet),
		}
	}

	return Result{
		Items:      pool,
		DegradedTo: DegradedUnfiltered,
		Warning:    "your restrictions exclude every compatible food; the full food list is shown and may include foods you asked to avoid",
	}
}

func admissible(pool []FoodItem, diet, budget, allergyText, avoidText string) []FoodItem {
	var out []FoodItem
	for _, item := range pool {
		if !item.HasDiet(diet) || !item.HasCost(budget) {
			continue
		}
		if shouldFilterOut(item, allergyText, avoidText) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// shouldFilterOut applies the allergy-category heuristics and the free-text
// avoid list. Both use substring matching against the lowercased name and
// category; multi-word phrases are not tokenized.
func shouldFilterOut(item FoodItem, allergyText, avoidText string) bool {
	name := strings.ToLower(item.Name)
	category := strings.ToLower(item.Category)

	allergies := strings.ToLower(allergyText)
	for allergy, keywords := range allergyKeywords {
		if !strings.Contains(allergies, allergy) {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(name, kw) || strings.Contains(category, kw) {
				return true
			}
		}
	}

	for _, token := range strings.Split(avoidText, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(name, token) || strings.Contains(category, token) {
			return true
		}
	}

	return false
}
