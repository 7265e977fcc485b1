package mealplan

// Day holds the three meal strings for one slot of the grid.
type Day struct {
	Number    int
	Breakfast string
	Lunch     string
	Dinner    string
}

// Week groups seven consecutive days.
type Week struct {
	Number int
	Days   []Day
}

// Plan is the 4x7 meal grid. When every protein was excluded by conflicting
// restrictions, Weeks is nil and Warning names the conflict; callers must
// surface the warning instead of substituting defaults.
type Plan struct {
	Weeks   []Week
	Warning string
}

// GroceryWeek is one week's shopping entry: two rotated proteins with display
// quantities, one fat, one pantry staple.
type GroceryWeek struct {
	Number   int
	Protein1 string
	Protein2 string
	Fat      string
	Pantry   string
}

// GroceryList mirrors Plan's warning semantics for the shopping side.
type GroceryList struct {
	Weeks   []GroceryWeek
	Warning string
}
