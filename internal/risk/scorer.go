package risk

import (
	"fmt"

	"github.com/qehealth/brisk/internal/classify"
)

// Level is the four-valued ordinal derived from the numeric score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Assessment is the deterministic risk verdict for one analysis.
type Assessment struct {
	Score       int    `json:"score"`
	Level       Level  `json:"level"`
	Description string `json:"description"`
}

// Scorer converts component, integration, and test counts into a bounded
// 0-100 score. The caps keep any single dimension from dominating: more
// than six components, 50 integration weight, or four touched test suites
// adds nothing further.
type Scorer struct {
	componentCap   int
	integrationCap int
	testCap        int
}

// NewScorer returns a scorer with the standard caps.
func NewScorer() *Scorer {
	return &Scorer{
		componentCap:   30,
		integrationCap: 50,
		testCap:        20,
	}
}

// Score combines the three signals into an Assessment. Integration points
// must already be deduplicated by type; each distinct point contributes
// weight*10 toward the integration share.
func (s *Scorer) Score(componentCount int, integrations []classify.IntegrationPoint, testCount int) Assessment {
	componentScore := capAt(componentCount*5, s.componentCap)

	integrationWeight := 0
	criticalCount := 0
	for _, point := range integrations {
		integrationWeight += point.Weight
		if point.Level == classify.LevelCritical {
			criticalCount++
		}
	}
	integrationScore := capAt(integrationWeight*10, s.integrationCap)

	testScore := capAt(testCount*5, s.testCap)

	score := capAt(componentScore+integrationScore+testScore, 100)
	level := levelFor(score)

	return Assessment{
		Score: score,
		Level: level,
		Description: fmt.Sprintf("%s risk: %d components affected, %d critical integrations touched",
			level, componentCount, criticalCount),
	}
}

func levelFor(score int) Level {
	switch {
	case score >= 70:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 30:
		return LevelMedium
	default:
		return LevelLow
	}
}

func capAt(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}
