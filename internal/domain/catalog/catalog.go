package catalog

import "sync"

// Diet tags used throughout the report pipeline. "Carnivore" doubles as the
// fallback diet when stricter protocols filter everything out.
const (
	DietLion            = "Lion"
	DietStrictCarnivore = "Strict Carnivore"
	DietCarnivore       = "Carnivore"
	DietKeto            = "Keto"
	DietPescatarian     = "Pescatarian"
)

// Budget tiers accepted by the questionnaire.
const (
	BudgetTight    = "tight"
	BudgetModerate = "moderate"
	BudgetPremium  = "premium"
)

var (
	once  sync.Once
	items []FoodItem
)

// Items returns the shared read-only catalog. It is built once at first use
// and must never be mutated by callers.
func Items() []FoodItem {
	once.Do(func() {
		items = buildCatalog()
	})
	return items
}

// ByGroup returns every catalog entry in the given group, unfiltered.
func ByGroup(group Group) []FoodItem {
	var out []FoodItem
	for _, item := range Items() {
		if item.Group == group {
			out = append(out, item)
		}
	}
	return out
}

func buildCatalog() []FoodItem {
	allDiets := []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto, DietPescatarian}
	allTiers := []string{BudgetTight, BudgetModerate, BudgetPremium}

	return []FoodItem{
		// Proteins
		{Name: "Ground Beef", Category: "Beef", Group: GroupProtein,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 287, Protein: 26, Fat: 20},
		{Name: "Chuck Roast", Category: "Beef", Group: GroupProtein,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 294, Protein: 27, Fat: 20},
		{Name: "Ribeye Steak", Category: "Beef", Group: GroupProtein,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto},
			Cost:  []string{BudgetPremium},
			Calories: 291, Protein: 24, Fat: 22},
		{Name: "NY Strip Steak", Category: "Beef", Group: GroupProtein,
			Diets: []string{DietLion, DietCarnivore, DietKeto},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 275, Protein: 26, Fat: 18},
		{Name: "Beef Liver", Category: "Beef", Group: GroupProtein,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore},
			Cost:  allTiers,
			Calories: 175, Protein: 27, Fat: 5, Carbs: 5},
		{Name: "Ground Lamb", Category: "Lamb", Group: GroupProtein,
			Diets: []string{DietLion, DietCarnivore},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 282, Protein: 25, Fat: 20},
		{Name: "Lamb Chops", Category: "Lamb", Group: GroupProtein,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 294, Protein: 25, Fat: 21},
		{Name: "Pork Shoulder", Category: "Pork", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 269, Protein: 26, Fat: 18},
		{Name: "Pork Chops", Category: "Pork", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 231, Protein: 25, Fat: 14},
		{Name: "Bacon", Category: "Pork", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  allTiers,
			Calories: 417, Protein: 13, Fat: 40},
		{Name: "Chicken Thighs", Category: "Poultry", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 229, Protein: 25, Fat: 14},
		{Name: "Whole Chicken", Category: "Poultry", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight},
			Calories: 239, Protein: 27, Fat: 14},
		{Name: "Salmon", Category: "Fish", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto, DietPescatarian},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 208, Protein: 20, Fat: 13},
		{Name: "Sardines", Category: "Fish", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto, DietPescatarian},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 208, Protein: 25, Fat: 11},
		{Name: "Mackerel", Category: "Fish", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietPescatarian},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 262, Protein: 24, Fat: 18},
		{Name: "Cod", Category: "Fish", Group: GroupProtein,
			Diets: []string{DietKeto, DietPescatarian},
			Cost:  []string{BudgetModerate},
			Calories: 105, Protein: 23, Fat: 1},
		{Name: "Shrimp", Category: "Shellfish", Group: GroupProtein,
			Diets: []string{DietCarnivore, DietKeto, DietPescatarian},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 99, Protein: 24, Fat: 1},
		{Name: "Scallops", Category: "Shellfish", Group: GroupProtein,
			Diets: []string{DietPescatarian},
			Cost:  []string{BudgetPremium},
			Calories: 111, Protein: 21, Fat: 1, Carbs: 5},
		{Name: "Eggs", Category: "Eggs", Group: GroupProtein,
			Diets: []string{DietStrictCarnivore, DietCarnivore, DietKeto, DietPescatarian},
			Cost:  allTiers,
			Calories: 155, Protein: 13, Fat: 11, Carbs: 1},

		// Fats
		{Name: "Butter", Category: "Dairy", Group: GroupFat,
			Diets: []string{DietStrictCarnivore, DietCarnivore, DietKeto, DietPescatarian},
			Cost:  allTiers,
			Calories: 717, Fat: 81},
		{Name: "Ghee", Category: "Dairy", Group: GroupFat,
			Diets: []string{DietCarnivore, DietKeto},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 900, Fat: 100},
		{Name: "Heavy Cream", Category: "Dairy", Group: GroupFat,
			Diets: []string{DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 340, Fat: 36, Carbs: 3},
		{Name: "Beef Tallow", Category: "Beef", Group: GroupFat,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto},
			Cost:  []string{BudgetTight, BudgetModerate},
			Calories: 902, Fat: 100},
		{Name: "Olive Oil", Category: "Plant", Group: GroupFat,
			Diets: []string{DietKeto, DietPescatarian},
			Cost:  allTiers,
			Calories: 884, Fat: 100},
		{Name: "Avocado Oil", Category: "Plant", Group: GroupFat,
			Diets: []string{DietKeto, DietPescatarian},
			Cost:  []string{BudgetModerate, BudgetPremium},
			Calories: 884, Fat: 100},

		// Pantry staples. Zero macros on purpose.
		{Name: "Sea Salt", Category: "Pantry", Group: GroupPantry, Diets: allDiets, Cost: allTiers},
		{Name: "Black Pepper", Category: "Pantry", Group: GroupPantry,
			Diets: []string{DietCarnivore, DietKeto, DietPescatarian}, Cost: allTiers},
		{Name: "Electrolyte Powder", Category: "Pantry", Group: GroupPantry,
			Diets: allDiets, Cost: []string{BudgetModerate, BudgetPremium}},
		{Name: "Bone Broth", Category: "Pantry", Group: GroupPantry,
			Diets: []string{DietLion, DietStrictCarnivore, DietCarnivore, DietKeto}, Cost: allTiers},
	}
}
