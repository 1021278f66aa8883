package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IntegrationType names an external or cross-cutting system touchpoint.
type IntegrationType string

const (
	IntegrationEpic            IntegrationType = "Epic"
	IntegrationFinancial       IntegrationType = "Financial"
	IntegrationPayment         IntegrationType = "Payment"
	IntegrationExternalAPI     IntegrationType = "ExternalAPI"
	IntegrationDatabase        IntegrationType = "Database"
	IntegrationMessaging       IntegrationType = "Messaging"
	IntegrationInternalService IntegrationType = "InternalService"
	IntegrationUI              IntegrationType = "UI"
)

// CriticalityLevel is the ordinal severity of touching an integration.
type CriticalityLevel string

const (
	LevelCritical CriticalityLevel = "critical"
	LevelHigh     CriticalityLevel = "high"
	LevelMedium   CriticalityLevel = "medium"
	LevelLow      CriticalityLevel = "low"
)

// IntegrationPoint is a detected touchpoint with its static level and
// weight. Multiple triggering files collapse to one entry per type.
type IntegrationPoint struct {
	Type   IntegrationType  `json:"type"`
	Level  CriticalityLevel `json:"level"`
	Weight int              `json:"weight"`
}

// CategoryRule maps keyword patterns onto one integration category.
// AllKeywords, when set, requires every listed keyword to appear (the
// ExternalAPI rule needs both "api" and "client").
type CategoryRule struct {
	Type        IntegrationType  `yaml:"type"`
	Level       CriticalityLevel `yaml:"level"`
	Weight      int              `yaml:"weight"`
	Keywords    []string         `yaml:"keywords"`
	AllKeywords []string         `yaml:"all_keywords"`
}

// DefaultRules returns the built-in category table for the
// healthcare-payments domain, ordered most critical first. The first rule
// a component matches is its single contribution for the pass.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{Type: IntegrationEpic, Level: LevelCritical, Weight: 5, Keywords: []string{"epic", "ehr"}},
		{Type: IntegrationFinancial, Level: LevelCritical, Weight: 5, Keywords: []string{"financial", "billing", "payment"}},
		{Type: IntegrationPayment, Level: LevelCritical, Weight: 5, Keywords: []string{"stripe", "paypal", "gateway"}},
		{Type: IntegrationExternalAPI, Level: LevelHigh, Weight: 4, AllKeywords: []string{"api", "client"}},
		{Type: IntegrationDatabase, Level: LevelHigh, Weight: 4, Keywords: []string{"repository", "dbcontext", "database"}},
		{Type: IntegrationMessaging, Level: LevelMedium, Weight: 3, Keywords: []string{"message", "queue", "event"}},
		{Type: IntegrationInternalService, Level: LevelMedium, Weight: 2, Keywords: []string{"service"}},
		{Type: IntegrationUI, Level: LevelLow, Weight: 1, Keywords: []string{"view", "page", "component", ".tsx", ".jsx"}},
	}
}

// IntegrationClassifier tags affected components with weighted integration
// categories. The rule table is immutable once constructed, so classifiers
// are safe to share across concurrent analyses.
type IntegrationClassifier struct {
	rules []CategoryRule
}

// NewIntegrationClassifier builds a classifier over the given rule table,
// falling back to the built-in table when rules is empty.
func NewIntegrationClassifier(rules []CategoryRule) *IntegrationClassifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &IntegrationClassifier{rules: rules}
}

// Classify scans each component against the rule table and returns the
// distinct integration points touched, deduplicated by type. A component
// contributes to at most one category.
func (c *IntegrationClassifier) Classify(components []Component) []IntegrationPoint {
	seen := make(map[IntegrationType]bool)
	points := []IntegrationPoint{}

	for _, component := range components {
		rule, ok := c.match(component)
		if !ok || seen[rule.Type] {
			continue
		}
		seen[rule.Type] = true
		points = append(points, IntegrationPoint{
			Type:   rule.Type,
			Level:  rule.Level,
			Weight: rule.Weight,
		})
	}

	return points
}

func (c *IntegrationClassifier) match(component Component) (CategoryRule, bool) {
	haystack := strings.ToLower(component.File + " " + component.Name)
	for _, rule := range c.rules {
		if ruleMatches(rule, haystack) {
			return rule, true
		}
	}
	return CategoryRule{}, false
}

func ruleMatches(rule CategoryRule, haystack string) bool {
	if len(rule.AllKeywords) > 0 {
		for _, keyword := range rule.AllKeywords {
			if !strings.Contains(haystack, keyword) {
				return false
			}
		}
		return true
	}
	for _, keyword := range rule.Keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// LoadRules reads a category rule table from a YAML file, allowing
// deployments to add site-specific vendor keywords without a rebuild.
func LoadRules(path string) ([]CategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules %s: %w", path, err)
	}

	var rules []CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse category rules %s: %w", path, err)
	}

	for i, rule := range rules {
		if rule.Type == "" {
			return nil, fmt.Errorf("category rule %d is missing a type", i)
		}
		if rule.Weight < 1 || rule.Weight > 5 {
			return nil, fmt.Errorf("category rule %s has weight %d, want 1-5", rule.Type, rule.Weight)
		}
	}

	return rules, nil
}
