package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qehealth/brisk/internal/classify"
)

func categories(recommendations []Recommendation) []string {
	result := make([]string, 0, len(recommendations))
	for _, recommendation := range recommendations {
		result = append(result, recommendation.Category)
	}
	return result
}

func TestRecommendQuietChange(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(
		Assessment{Score: 10, Level: LevelLow},
		[]classify.Component{{Name: "StringUtils", File: "Helpers/StringUtils.cs", Type: classify.ComponentGeneric}},
		nil,
		nil,
	)

	assert.Empty(t, got)
}

func TestRecommendCriticalIntegrations(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(
		Assessment{Score: 40, Level: LevelMedium},
		nil,
		[]classify.IntegrationPoint{
			{Type: classify.IntegrationFinancial, Level: classify.LevelCritical, Weight: 5},
			{Type: classify.IntegrationPayment, Level: classify.LevelCritical, Weight: 5},
		},
		nil,
	)

	require.Len(t, got, 1)
	assert.Equal(t, "Integration", got[0].Category)
	assert.Equal(t, LevelCritical, got[0].Priority)
	assert.Contains(t, got[0].Recommendation, "2 critical integration(s)")
	assert.Equal(t, []string{"integration", "e2e"}, got[0].TestTypes)
}

func TestRecommendControllerChange(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(
		Assessment{Score: 20, Level: LevelLow},
		[]classify.Component{{Name: "ClaimsController", File: "Controllers/ClaimsController.cs", Type: classify.ComponentController}},
		nil,
		nil,
	)

	require.Len(t, got, 1)
	assert.Equal(t, "API", got[0].Category)
	assert.Equal(t, LevelHigh, got[0].Priority)
	assert.Equal(t, []string{"api", "integration"}, got[0].TestTypes)
}

func TestRecommendCriticalLevelRegression(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(Assessment{Score: 75, Level: LevelCritical}, nil, nil, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Regression", got[0].Category)
	assert.Equal(t, LevelCritical, got[0].Priority)
}

func TestRecommendRulesStack(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(
		Assessment{Score: 80, Level: LevelCritical},
		[]classify.Component{
			{Name: "PaymentController", File: "Controllers/PaymentController.cs", Type: classify.ComponentController},
			{Name: "PaymentRepository", File: "Repositories/PaymentRepository.cs", Type: classify.ComponentRepository},
		},
		[]classify.IntegrationPoint{
			{Type: classify.IntegrationFinancial, Level: classify.LevelCritical, Weight: 5},
			{Type: classify.IntegrationDatabase, Level: classify.LevelHigh, Weight: 4},
		},
		[]string{"Tests/PaymentControllerTests.cs"},
	)

	assert.Equal(t, []string{"Integration", "API", "Regression", "Database", "Data Access", "Tests"}, categories(got))
}

func TestRecommendAffectedTests(t *testing.T) {
	engine := NewRecommendationEngine()

	got := engine.Recommend(
		Assessment{Score: 10, Level: LevelLow},
		nil,
		nil,
		[]string{"Tests/A.cs", "Tests/B.cs", "Tests/C.cs"},
	)

	require.Len(t, got, 1)
	assert.Equal(t, "Tests", got[0].Category)
	assert.Contains(t, got[0].Recommendation, "3 directly affected test suite(s)")
}
