package analyzer

import (
	"time"

	"github.com/qehealth/brisk/internal/classify"
	"github.com/qehealth/brisk/internal/depgraph"
	"github.com/qehealth/brisk/internal/resolver"
	"github.com/qehealth/brisk/internal/risk"
)

// Request is the single input object for one blast-radius analysis.
type Request struct {
	App            string   `json:"app"`
	ChangedFiles   []string `json:"changed_files"`
	Depth          int      `json:"depth,omitempty"`
	AvailableFiles []string `json:"available_files,omitempty"`
}

// Impact summarizes the affected surface of a change set.
type Impact struct {
	AffectedComponents     []string `json:"affected_components"`
	AffectedTests          []string `json:"affected_tests"`
	AffectedIntegrations   []string `json:"affected_integrations"`
	DirectDependencies     int      `json:"direct_dependencies"`
	TransitiveDependencies int      `json:"transitive_dependencies"`
}

// Result is the composite analysis output. It is always fully assembled:
// unresolved files appear as explicit markers instead of being dropped.
type Result struct {
	ID              string                  `json:"id"`
	App             string                  `json:"app"`
	Risk            risk.Assessment         `json:"risk"`
	ChangedFiles    []resolver.ResolvedFile `json:"changed_files"`
	Impact          Impact                  `json:"impact"`
	Recommendations []risk.Recommendation   `json:"recommendations"`
	Timestamp       time.Time               `json:"timestamp"`
}

// DependencyReport exposes the graph data alone, for callers that only
// need expansion without scoring.
type DependencyReport struct {
	File                   string                    `json:"file"`
	DirectDependencies     []string                  `json:"direct_dependencies"`
	DirectDependents       []string                  `json:"direct_dependents"`
	TransitiveDependencies []depgraph.TransitiveNode `json:"transitive_dependencies"`
	TransitiveDependents   []depgraph.TransitiveNode `json:"transitive_dependents"`
}

// affectedSet accumulates components deduplicated by name, preserving
// first-seen order.
type affectedSet struct {
	order      []string
	components map[string]classify.Component
}

func newAffectedSet() *affectedSet {
	return &affectedSet{components: make(map[string]classify.Component)}
}

func (s *affectedSet) add(component classify.Component) {
	if _, exists := s.components[component.Name]; exists {
		return
	}
	s.components[component.Name] = component
	s.order = append(s.order, component.Name)
}

func (s *affectedSet) slice() []classify.Component {
	result := make([]classify.Component, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.components[name])
	}
	return result
}
