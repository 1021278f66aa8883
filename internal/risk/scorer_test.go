package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qehealth/brisk/internal/classify"
)

func critical(typ classify.IntegrationType) classify.IntegrationPoint {
	return classify.IntegrationPoint{Type: typ, Level: classify.LevelCritical, Weight: 5}
}

func TestScoreFormula(t *testing.T) {
	tests := []struct {
		name         string
		components   int
		integrations []classify.IntegrationPoint
		tests        int
		wantScore    int
		wantLevel    Level
	}{
		{
			name:      "no impact",
			wantScore: 0,
			wantLevel: LevelLow,
		},
		{
			name:       "components only",
			components: 3,
			wantScore:  15,
			wantLevel:  LevelLow,
		},
		{
			name:       "component cap at six",
			components: 20,
			wantScore:  30,
			wantLevel:  LevelMedium,
		},
		{
			name:       "single medium integration",
			components: 2,
			integrations: []classify.IntegrationPoint{
				{Type: classify.IntegrationInternalService, Level: classify.LevelMedium, Weight: 2},
			},
			wantScore: 30,
			wantLevel: LevelMedium,
		},
		{
			name:       "billing change hits critical",
			components: 3,
			integrations: []classify.IntegrationPoint{
				critical(classify.IntegrationFinancial),
				critical(classify.IntegrationPayment),
			},
			tests:     2,
			wantScore: 75,
			wantLevel: LevelCritical,
		},
		{
			name:       "integration weight cap",
			components: 1,
			integrations: []classify.IntegrationPoint{
				critical(classify.IntegrationEpic),
				critical(classify.IntegrationFinancial),
				critical(classify.IntegrationPayment),
				{Type: classify.IntegrationDatabase, Level: classify.LevelHigh, Weight: 4},
			},
			wantScore: 55,
			wantLevel: LevelHigh,
		},
		{
			name:       "test cap at four",
			components: 1,
			tests:      10,
			wantScore:  25,
			wantLevel:  LevelLow,
		},
		{
			name:       "everything capped clamps to 100",
			components: 30,
			integrations: []classify.IntegrationPoint{
				critical(classify.IntegrationEpic),
				critical(classify.IntegrationFinancial),
				critical(classify.IntegrationPayment),
				{Type: classify.IntegrationDatabase, Level: classify.LevelHigh, Weight: 4},
				{Type: classify.IntegrationExternalAPI, Level: classify.LevelHigh, Weight: 4},
			},
			tests:     10,
			wantScore: 100,
			wantLevel: LevelCritical,
		},
	}

	scorer := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.components, tt.integrations, tt.tests)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLevel, got.Level)
		})
	}
}

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelLow},
		{29, LevelLow},
		{30, LevelMedium},
		{49, LevelMedium},
		{50, LevelHigh},
		{69, LevelHigh},
		{70, LevelCritical},
		{100, LevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.score), "score %d", tt.score)
	}
}

func TestScoreDescription(t *testing.T) {
	scorer := NewScorer()

	got := scorer.Score(3, []classify.IntegrationPoint{
		critical(classify.IntegrationFinancial),
		{Type: classify.IntegrationDatabase, Level: classify.LevelHigh, Weight: 4},
	}, 1)

	assert.Equal(t, "critical risk: 3 components affected, 1 critical integrations touched", got.Description)
}
