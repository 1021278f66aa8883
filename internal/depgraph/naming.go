package depgraph

import "strings"

// NamingGraph infers a layered dependency relation from naming
// conventions alone: Controller depends on Service depends on Repository,
// with Model/Entity files depended on by the Service and Controller
// layers. No import statements are parsed; edges are candidate paths
// produced by substring rewrites, and may not correspond to real files.
type NamingGraph struct{}

// NewNamingGraph returns the convention-based Provider.
func NewNamingGraph() *NamingGraph {
	return &NamingGraph{}
}

// ServiceFromController rewrites the first occurrence of "Controller" in
// path to "Service". A folder segment like "Controllers" is rewritten
// too, which can yield paths that do not exist; that imprecision is part
// of the heuristic's contract and is covered by tests, not corrected.
func (g *NamingGraph) ServiceFromController(path string) (string, bool) {
	return replaceFirst(path, "Controller", "Service")
}

// RepositoryFromService rewrites the first occurrence of "Service" in
// path to "Repository".
func (g *NamingGraph) RepositoryFromService(path string) (string, bool) {
	return replaceFirst(path, "Service", "Repository")
}

// Dependencies returns the candidate files one layer inward from file.
// Files with no recognizable layer contribute no edges.
func (g *NamingGraph) Dependencies(file string) []string {
	switch layerOf(file) {
	case layerController:
		if service, ok := g.ServiceFromController(file); ok {
			return []string{service}
		}
	case layerService:
		if repository, ok := g.RepositoryFromService(file); ok {
			return []string{repository}
		}
	}
	return []string{}
}

// Dependents returns the candidate files one layer outward from file.
func (g *NamingGraph) Dependents(file string) []string {
	switch layerOf(file) {
	case layerService:
		if controller, ok := replaceFirst(file, "Service", "Controller"); ok {
			return []string{controller}
		}
	case layerRepository:
		if service, ok := replaceFirst(file, "Repository", "Service"); ok {
			return []string{service}
		}
	case layerModel:
		// Models are leaves: both the Service and Controller layers may
		// reference them.
		dependents := []string{}
		for _, marker := range []string{"Model", "Entity"} {
			if service, ok := replaceFirst(file, marker, "Service"); ok {
				dependents = append(dependents, service)
			}
			if controller, ok := replaceFirst(file, marker, "Controller"); ok {
				dependents = append(dependents, controller)
			}
		}
		return dependents
	}
	return []string{}
}

type layer int

const (
	layerUnknown layer = iota
	layerController
	layerService
	layerRepository
	layerModel
)

// layerOf picks the outermost layer marker present in the path. The
// markers are literal, matching the rewrite rules: an all-lowercase
// "controller" carries no layer because it could never be rewritten.
func layerOf(path string) layer {
	switch {
	case strings.Contains(path, "Controller"):
		return layerController
	case strings.Contains(path, "Service"):
		return layerService
	case strings.Contains(path, "Repository"):
		return layerRepository
	case strings.Contains(path, "Model"), strings.Contains(path, "Entity"):
		return layerModel
	}
	return layerUnknown
}

func replaceFirst(path, old, new string) (string, bool) {
	if !strings.Contains(path, old) {
		return "", false
	}
	return strings.Replace(path, old, new, 1), true
}
