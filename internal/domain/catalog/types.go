package catalog

// Group partitions the catalog by shopping role.
type Group string

const (
	GroupProtein Group = "protein"
	GroupFat     Group = "fat"
	GroupPantry  Group = "pantry"
)

// FoodItem is one immutable catalog entry. Macro fields are per typical
// serving and stay zero for non-food pantry items.
type FoodItem struct {
	Name     string
	Category string
	Group    Group
	Diets    []string
	Cost     []string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// HasDiet reports whether the item is tagged compatible with the diet.
func (f FoodItem) HasDiet(diet string) bool {
	for _, d := range f.Diets {
		if d == diet {
			return true
		}
	}
	return false
}

// HasCost reports whether the item is available at the budget tier.
func (f FoodItem) HasCost(budget string) bool {
	for _, c := range f.Cost {
		if c == budget {
			return true
		}
	}
	return false
}

// Degradation names how far the filter had to fall back to produce a
// non-empty result.
type Degradation string

const (
	// DegradedNone means the requested diet and restrictions were honored.
	DegradedNone Degradation = "diet"
	// DegradedCarnivore means the diet was widened to Carnivore with
	// restrictions still applied.
	DegradedCarnivore Degradation = "carnivore"
	// DegradedUnfiltered means the full catalog group was returned and the
	// user's restrictions were ignored.
	DegradedUnfiltered Degradation = "unfiltered"
)

// Result is the tagged outcome of a filter call. Items is never empty as long
// as the catalog group itself is non-empty.
type Result struct {
	Items      []FoodItem
	DegradedTo Degradation
	Warning    string
}
