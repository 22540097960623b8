package badges

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCatalogRejectsDuplicateIdentifiers(t *testing.T) {
	always := func(Metrics) bool { return true }

	_, err := NewCatalog([]Definition{
		{ID: "first-steps", Name: "A", Criteria: always},
		{ID: "first-steps", Name: "B", Criteria: always},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate badge identifier")
}

func TestNewCatalogRejectsMissingCriteria(t *testing.T) {
	_, err := NewCatalog([]Definition{{ID: "broken", Name: "Broken"}})
	require.Error(t, err)
}

func TestCatalogAllPreservesDeclarationOrder(t *testing.T) {
	catalog, err := NewCatalog(Default(DefaultThresholds()))
	require.NoError(t, err)

	defs := catalog.All()
	require.Equal(t, catalog.Len(), len(defs))
	require.Equal(t, "first-steps", defs[0].ID)

	again := catalog.All()
	for i := range defs {
		require.Equal(t, defs[i].ID, again[i].ID)
	}
}

func TestEligibleFiltersEarnedAndUnsatisfied(t *testing.T) {
	catalog, err := NewCatalog(Default(DefaultThresholds()))
	require.NoError(t, err)

	metrics := Metrics{
		TotalAttempts:       12,
		CompletedAttempts:   10,
		TotalResponses:      40,
		CorrectResponses:    38,
		Accuracy:            0.95,
		BestAttemptAccuracy: 1,
		CurrentStreak:       3,
	}

	candidates := catalog.Eligible(metrics, map[string]bool{"first-steps": true})
	ids := make([]string, 0, len(candidates))
	for _, def := range candidates {
		ids = append(ids, def.ID)
	}

	// Catalog order, first-steps excluded as already earned, lesson-master
	// and streak-week excluded because their criteria do not hold yet.
	require.Equal(t, []string{"dedicated-learner", "sharp-shooter", "perfect-lesson", "streak-spark"}, ids)
}

func TestEligibleNeverUnEarnsRegressedBadges(t *testing.T) {
	catalog, err := NewCatalog(Default(DefaultThresholds()))
	require.NoError(t, err)

	// Accuracy has regressed below the sharp-shooter threshold, but the
	// badge is already held; it must stay excluded rather than resurface.
	metrics := Metrics{TotalResponses: 100, Accuracy: 0.4}
	candidates := catalog.Eligible(metrics, map[string]bool{"sharp-shooter": true})
	for _, def := range candidates {
		require.NotEqual(t, "sharp-shooter", def.ID)
	}
}

func TestEligibleZeroHistoryAwardsNothing(t *testing.T) {
	catalog, err := NewCatalog(Default(DefaultThresholds()))
	require.NoError(t, err)

	require.Empty(t, catalog.Eligible(Metrics{}, nil))
}
