package mealplan

import (
	"fmt"

	"github.com/primalpath/report-engine/internal/domain/catalog"
)

// Groceries derives the four weekly shopping entries from the same filtered
// catalog the meal grid uses. Selection rotates by week number, not day
// number, so the list stays stable even when the grid repeats proteins.
func Groceries(diet, budget, allergyText, avoidText string) GroceryList {
	proteins := catalog.Filter(catalog.GroupProtein, diet, budget, allergyText, avoidText)
	fats := catalog.Filter(catalog.GroupFat, diet, budget, allergyText, avoidText)
	pantry := catalog.Filter(catalog.GroupPantry, diet, budget, allergyText, avoidText)
	return buildGroceries(proteins, fats, pantry, diet)
}

func buildGroceries(proteins, fats, pantry catalog.Result, diet string) GroceryList {
	if len(proteins.Items) == 0 {
		return GroceryList{Warning: fmt.Sprintf(
			"no proteins are compatible with the %s protocol and your restrictions; adjust your allergy or avoid list", diet)}
	}

	list := GroceryList{Warning: firstWarning(proteins.Warning, fats.Warning, pantry.Warning)}
	for wk := 1; wk <= 4; wk++ {
		entry := GroceryWeek{Number: wk}
		entry.Protein1 = proteins.Items[wk%len(proteins.Items)].Name + " — 5 lbs"
		entry.Protein2 = proteins.Items[(wk+1)%len(proteins.Items)].Name + " — 4 lbs"
		if len(fats.Items) > 0 {
			entry.Fat = fats.Items[wk%len(fats.Items)].Name + " — 1 lb"
		}
		if len(pantry.Items) > 0 {
			entry.Pantry = pantry.Items[wk%len(pantry.Items)].Name
		}
		list.Weeks = append(list.Weeks, entry)
	}
	return list
}

func firstWarning(warnings ...string) string {
	for _, w := range warnings {
		if w != "" {
			return w
		}
	}
	return ""
}
