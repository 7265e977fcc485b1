package mealplan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primalpath/report-engine/internal/domain/catalog"
)

func TestGroceriesAreDeterministic(t *testing.T) {
	first := Groceries(catalog.DietCarnivore, catalog.BudgetTight, "", "")
	second := Groceries(catalog.DietCarnivore, catalog.BudgetTight, "", "")
	require.Equal(t, first, second)
}

func TestGroceriesFourWeeksWithQuantities(t *testing.T) {
	list := Groceries(catalog.DietKeto, catalog.BudgetModerate, "", "")
	require.Len(t, list.Weeks, 4)
	for i, wk := range list.Weeks {
		require.Equal(t, i+1, wk.Number)
		require.Contains(t, wk.Protein1, " — 5 lbs")
		require.Contains(t, wk.Protein2, " — 4 lbs")
		require.NotEmpty(t, wk.Fat)
		require.NotEmpty(t, wk.Pantry)
	}
}

func TestKetoDairyAllergyExcludesDairyFats(t *testing.T) {
	list := Groceries(catalog.DietKeto, catalog.BudgetModerate, "dairy", "")
	require.Len(t, list.Weeks, 4)
	for _, wk := range list.Weeks {
		for _, dairy := range []string{"Butter", "Ghee", "Cream"} {
			require.NotContains(t, wk.Fat, dairy)
		}
	}
}

func TestGroceriesWarningOnEmptyProteins(t *testing.T) {
	list := buildGroceries(catalog.Result{}, catalog.Result{}, catalog.Result{}, catalog.DietLion)
	require.Empty(t, list.Weeks)
	require.Contains(t, list.Warning, "Lion")
}

func TestGroceryRotationIndexedByWeek(t *testing.T) {
	proteins := catalog.Filter(catalog.GroupProtein, catalog.DietLion, catalog.BudgetTight, "", "").Items
	list := Groceries(catalog.DietLion, catalog.BudgetTight, "", "")
	for i, wk := range list.Weeks {
		want := proteins[(i+1)%len(proteins)].Name
		require.True(t, strings.HasPrefix(wk.Protein1, want), "week %d expected %s, got %s", i+1, want, wk.Protein1)
	}
}
