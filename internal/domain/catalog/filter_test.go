package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterHonorsDietAndBudget(t *testing.T) {
	res := Filter(GroupProtein, DietLion, BudgetTight, "", "")
	require.Equal(t, DegradedNone, res.DegradedTo)
	require.Empty(t, res.Warning)
	require.NotEmpty(t, res.Items)
	for _, item := range res.Items {
		require.True(t, item.HasDiet(DietLion), "item %s is not Lion compatible", item.Name)
		require.True(t, item.HasCost(BudgetTight), "item %s is not in the tight tier", item.Name)
	}
}

func TestFilterAllergyCategoriesUseSubstrings(t *testing.T) {
	res := Filter(GroupProtein, DietCarnivore, BudgetModerate, "beef, shellfish", "")
	require.Equal(t, DegradedNone, res.DegradedTo)
	for _, item := range res.Items {
		require.NotEqual(t, "Beef", item.Category, "beef allergy should drop %s", item.Name)
		require.NotEqual(t, "Shellfish", item.Category)
		// "beef" also matches organ cuts by name.
		require.NotContains(t, item.Name, "Beef")
	}
}

func TestFilterAvoidTokensMatchNameOrCategory(t *testing.T) {
	res := Filter(GroupProtein, DietCarnivore, BudgetModerate, "", "ground beef, Pork")
	for _, item := range res.Items {
		require.NotEqual(t, "Ground Beef", item.Name)
		require.NotEqual(t, "Pork", item.Category)
	}
	// Other ground cuts survive a "ground beef" token.
	require.Contains(t, names(res.Items), "Ground Lamb")
}

func TestFilterMonotoneUnderGrowingAvoidList(t *testing.T) {
	avoid := ""
	prev := len(Filter(GroupProtein, DietCarnivore, BudgetModerate, "", avoid).Items)
	for _, next := range []string{"beef", "beef, pork", "beef, pork, fish", "beef, pork, fish, eggs"} {
		res := filterOneTier(GroupProtein, DietCarnivore, BudgetModerate, "", next)
		require.LessOrEqual(t, len(res), prev, "avoid list %q grew the admissible set", next)
		prev = len(res)
	}
}

// filterOneTier bypasses the fallback so monotonicity can be observed even
// once the set reaches zero.
func filterOneTier(group Group, diet, budget, allergyText, avoidText string) []FoodItem {
	return admissible(ByGroup(group), diet, budget, allergyText, avoidText)
}

func TestFilterFallsBackToCarnivore(t *testing.T) {
	// Scallops are the only premium Pescatarian-exclusive protein; blocking
	// the whole Pescatarian list forces the Carnivore tier.
	res := Filter(GroupProtein, DietPescatarian, BudgetPremium, "shellfish, egg", "salmon")
	require.Equal(t, DegradedCarnivore, res.DegradedTo)
	require.NotEmpty(t, res.Items)
	require.NotEmpty(t, res.Warning)
}

func TestFilterFallsBackToUnfiltered(t *testing.T) {
	res := Filter(GroupProtein, DietLion, BudgetTight, "beef, lamb, pork, fish, shellfish, egg", "chicken, poultry")
	require.Equal(t, DegradedUnfiltered, res.DegradedTo)
	require.NotEmpty(t, res.Warning)
	require.Len(t, res.Items, len(ByGroup(GroupProtein)))
}

func TestFilterNeverReturnsEmpty(t *testing.T) {
	// An avoid list covering everything still yields the unfiltered group.
	res := Filter(GroupFat, DietKeto, BudgetTight, "dairy", "tallow, oil, cream, butter")
	require.NotEmpty(t, res.Items)
}

func TestKetoDairyAllergyKeepsNonDairyFats(t *testing.T) {
	res := Filter(GroupFat, DietKeto, BudgetModerate, "dairy", "")
	require.Equal(t, DegradedNone, res.DegradedTo)
	for _, item := range res.Items {
		require.NotEqual(t, "Dairy", item.Category)
	}
}

func TestCatalogIsStable(t *testing.T) {
	first := Items()
	second := Items()
	require.Equal(t, len(first), len(second))
	require.NotEmpty(t, ByGroup(GroupProtein))
	require.NotEmpty(t, ByGroup(GroupFat))
	require.NotEmpty(t, ByGroup(GroupPantry))
}

func names(items []FoodItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}
