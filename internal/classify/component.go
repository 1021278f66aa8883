package classify

import "strings"

// ComponentType buckets a file into its architectural layer.
type ComponentType string

const (
	ComponentController ComponentType = "Controller"
	ComponentService    ComponentType = "Service"
	ComponentRepository ComponentType = "Repository"
	ComponentModel      ComponentType = "Model"
	ComponentTest       ComponentType = "Test"
	ComponentGeneric    ComponentType = "Component"
)

// Component is one affected unit of the codebase, deduplicated by Name
// within a single analysis.
type Component struct {
	Name string        `json:"name"`
	File string        `json:"file"`
	Type ComponentType `json:"type"`
}

// ComponentTypeOf derives a component type from a file path by a
// case-insensitive substring scan in fixed priority order. A path like
// TestController.cs classifies as Controller because Controller is scanned
// first. "Entity" deliberately does not match an "Entities" folder; only
// the literal substring counts.
func ComponentTypeOf(path string) ComponentType {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "controller"):
		return ComponentController
	case strings.Contains(lower, "service"):
		return ComponentService
	case strings.Contains(lower, "repository"):
		return ComponentRepository
	case strings.Contains(lower, "model"), strings.Contains(lower, "entity"):
		return ComponentModel
	case strings.Contains(lower, "test"):
		return ComponentTest
	default:
		return ComponentGeneric
	}
}

// ComponentFromPath builds a Component for a file, naming it after the
// filename without extension.
func ComponentFromPath(path string) Component {
	return Component{
		Name: componentName(path),
		File: path,
		Type: ComponentTypeOf(path),
	}
}

func componentName(path string) string {
	name := path
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return name
}
