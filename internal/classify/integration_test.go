package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func components(paths ...string) []Component {
	result := make([]Component, 0, len(paths))
	for _, path := range paths {
		result = append(result, ComponentFromPath(path))
	}
	return result
}

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected IntegrationType
		level    CriticalityLevel
		weight   int
	}{
		{"Epic integration", "Clients/EpicConnector.cs", IntegrationEpic, LevelCritical, 5},
		{"EHR integration", "EhrSync.cs", IntegrationEpic, LevelCritical, 5},
		{"Billing is financial", "Services/BillingService.cs", IntegrationFinancial, LevelCritical, 5},
		{"Stripe gateway", "StripeClient.cs", IntegrationPayment, LevelCritical, 5},
		{"External API needs both keywords", "Clients/EligibilityApiClient.cs", IntegrationExternalAPI, LevelHigh, 4},
		{"Database via dbcontext", "Data/ClaimsDbContext.cs", IntegrationDatabase, LevelHigh, 4},
		{"Messaging via queue", "QueueWorker.cs", IntegrationMessaging, LevelMedium, 3},
		{"Internal service", "Services/AuditService.cs", IntegrationInternalService, LevelMedium, 2},
		{"UI page", "Pages/ClaimsPage.tsx", IntegrationUI, LevelLow, 1},
	}

	classifier := NewIntegrationClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := classifier.Classify(components(tt.path))
			require.Len(t, points, 1)
			assert.Equal(t, tt.expected, points[0].Type)
			assert.Equal(t, tt.level, points[0].Level)
			assert.Equal(t, tt.weight, points[0].Weight)
		})
	}
}

// Two components matching the same category collapse into one point.
func TestClassifyDeduplicatesByType(t *testing.T) {
	classifier := NewIntegrationClassifier(nil)

	points := classifier.Classify(components(
		"Services/BillingService.cs",
		"Services/PaymentService.cs",
	))

	require.Len(t, points, 1)
	assert.Equal(t, IntegrationFinancial, points[0].Type)
}

// A component contributes to at most one category; the most critical
// matching rule wins.
func TestClassifySingleContributionPerComponent(t *testing.T) {
	classifier := NewIntegrationClassifier(nil)

	// Matches Financial (payment) before InternalService (service).
	points := classifier.Classify(components("Services/PaymentService.cs"))

	require.Len(t, points, 1)
	assert.Equal(t, IntegrationFinancial, points[0].Type)
}

func TestClassifyDistinctCategories(t *testing.T) {
	classifier := NewIntegrationClassifier(nil)

	points := classifier.Classify(components(
		"Services/BillingService.cs",
		"Gateways/StripeGateway.cs",
		"Data/ClaimsDbContext.cs",
	))

	require.Len(t, points, 3)
	types := map[IntegrationType]bool{}
	for _, point := range points {
		types[point.Type] = true
	}
	assert.True(t, types[IntegrationFinancial])
	assert.True(t, types[IntegrationPayment])
	assert.True(t, types[IntegrationDatabase])
}

func TestClassifyNoMatches(t *testing.T) {
	classifier := NewIntegrationClassifier(nil)

	points := classifier.Classify(components("README.md", "Helpers/StringUtils.cs"))

	assert.Empty(t, points)
}

// The ExternalAPI rule requires every listed keyword, not any.
func TestClassifyAllKeywords(t *testing.T) {
	classifier := NewIntegrationClassifier(nil)

	points := classifier.Classify(components("Integrations/HttpApiHelper.cs"))
	assert.Empty(t, points)

	points = classifier.Classify(components("Integrations/HttpApiClient.cs"))
	require.Len(t, points, 1)
	assert.Equal(t, IntegrationExternalAPI, points[0].Type)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
- type: Epic
  level: critical
  weight: 5
  keywords: [epic, ehr, cerner]
- type: Financial
  level: critical
  weight: 5
  keywords: [billing]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, IntegrationEpic, rules[0].Type)
	assert.Contains(t, rules[0].Keywords, "cerner")
}

func TestLoadRulesValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
- type: Epic
  level: critical
  weight: 9
  keywords: [epic]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight")
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
