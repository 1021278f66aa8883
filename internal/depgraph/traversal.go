package depgraph

// TransitiveDependencies expands the dependency relation breadth-first
// from file's direct dependencies up to maxDepth hops. Each discovered
// file carries its shortest discovery depth. The origin file is excluded
// even when inferred rewrites cycle back to it, and maxDepth 0 returns an
// empty result without traversing.
func TransitiveDependencies(provider Provider, file string, maxDepth int) []TransitiveNode {
	return expand(provider.Dependencies, file, maxDepth)
}

// TransitiveDependents is the reverse expansion over the dependents
// relation, with the same bounds and exclusions.
func TransitiveDependents(provider Provider, file string, maxDepth int) []TransitiveNode {
	return expand(provider.Dependents, file, maxDepth)
}

func expand(neighbors func(string) []string, origin string, maxDepth int) []TransitiveNode {
	result := []TransitiveNode{}
	if maxDepth <= 0 {
		return result
	}

	visited := map[string]bool{origin: true}
	frontier := []string{origin}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		next := []string{}
		for _, file := range frontier {
			for _, neighbor := range neighbors(file) {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				result = append(result, TransitiveNode{File: neighbor, Depth: depth})
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return result
}
