package depgraph

// Provider supplies dependency edges for a file. The naming-convention
// graph is the default; a structural analyzer can substitute a precise
// import graph without touching the scorer or classifier.
type Provider interface {
	// Dependencies returns the files the given file depends on.
	Dependencies(file string) []string
	// Dependents returns the files that depend on the given file.
	Dependents(file string) []string
}

// TransitiveNode is a file discovered during bounded graph expansion,
// tagged with its shortest discovery depth (1..maxDepth). The origin file
// never appears as a node.
type TransitiveNode struct {
	File  string `json:"file"`
	Depth int    `json:"depth"`
}
