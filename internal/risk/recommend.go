package risk

import (
	"fmt"

	"github.com/qehealth/brisk/internal/classify"
)

// Recommendation is one prioritized remediation action with the test
// types that satisfy it.
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       Level    `json:"priority"`
	Recommendation string   `json:"recommendation"`
	TestTypes      []string `json:"test_types"`
}

// RecommendationEngine evaluates an open rule table against an analysis.
// Rules fire independently; several can apply to the same change.
type RecommendationEngine struct{}

// NewRecommendationEngine returns the engine with the standard rule table.
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommend derives remediation actions from the assessment, affected
// components, integration points, and directly affected tests.
func (e *RecommendationEngine) Recommend(
	assessment Assessment,
	components []classify.Component,
	integrations []classify.IntegrationPoint,
	affectedTests []string,
) []Recommendation {
	recommendations := []Recommendation{}

	if criticalIntegrations := countCritical(integrations); criticalIntegrations > 0 {
		recommendations = append(recommendations, Recommendation{
			Category: "Integration",
			Priority: LevelCritical,
			Recommendation: fmt.Sprintf("Verify %d critical integration(s) end to end before release",
				criticalIntegrations),
			TestTypes: []string{"integration", "e2e"},
		})
	}

	if hasComponentType(components, classify.ComponentController) {
		recommendations = append(recommendations, Recommendation{
			Category:       "API",
			Priority:       LevelHigh,
			Recommendation: "Controller changes alter the API surface; exercise affected endpoints",
			TestTypes:      []string{"api", "integration"},
		})
	}

	if assessment.Level == LevelCritical {
		recommendations = append(recommendations, Recommendation{
			Category:       "Regression",
			Priority:       LevelCritical,
			Recommendation: "Run the full regression suite; overall risk is critical",
			TestTypes:      []string{"regression", "e2e"},
		})
	}

	if hasIntegrationType(integrations, classify.IntegrationDatabase) {
		recommendations = append(recommendations, Recommendation{
			Category:       "Database",
			Priority:       LevelHigh,
			Recommendation: "Database-touching changes need schema and data verification",
			TestTypes:      []string{"integration", "data"},
		})
	}

	if hasComponentType(components, classify.ComponentRepository) {
		recommendations = append(recommendations, Recommendation{
			Category:       "Data Access",
			Priority:       LevelMedium,
			Recommendation: "Repository changes affect persistence; cover query paths",
			TestTypes:      []string{"unit", "integration"},
		})
	}

	if len(affectedTests) > 0 {
		recommendations = append(recommendations, Recommendation{
			Category: "Tests",
			Priority: LevelMedium,
			Recommendation: fmt.Sprintf("Update the %d directly affected test suite(s) alongside the change",
				len(affectedTests)),
			TestTypes: []string{"unit"},
		})
	}

	return recommendations
}

func countCritical(integrations []classify.IntegrationPoint) int {
	count := 0
	for _, point := range integrations {
		if point.Level == classify.LevelCritical {
			count++
		}
	}
	return count
}

func hasComponentType(components []classify.Component, componentType classify.ComponentType) bool {
	for _, component := range components {
		if component.Type == componentType {
			return true
		}
	}
	return false
}

func hasIntegrationType(integrations []classify.IntegrationPoint, integrationType classify.IntegrationType) bool {
	for _, point := range integrations {
		if point.Type == integrationType {
			return true
		}
	}
	return false
}
