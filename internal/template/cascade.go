package template

import "sort"

// CascadeRemoval is a derived fact: a resource not originally slated for
// removal that must also go because its properties structurally reference a
// removed one. Recomputed whenever the removal set changes, never persisted.
type CascadeRemoval struct {
	LogicalID    string
	ResourceType string
	// Requires is the already-removed logical id this resource references.
	Requires string
}

// AnalyzeCascadeRemovals finds, by fixed-point iteration, every resource
// whose properties hold a direct or attribute reference into the growing
// removal set. Dependency-list-only relationships never count: an explicit
// DependsOn can simply be stripped, while an unresolved value-level reference
// would invalidate the template.
func AnalyzeCascadeRemovals(t *Template, removalSet map[string]bool) []CascadeRemoval {
	removed := make(map[string]bool, len(removalSet))
	for id := range removalSet {
		removed[id] = true
	}

	var cascades []CascadeRemoval
	for {
		added := false
		for _, name := range sortedResourceNames(t) {
			if removed[name] {
				continue
			}
			target, found := findValueReference(t.Resources[name].Properties, removed)
			if !found {
				continue
			}
			cascades = append(cascades, CascadeRemoval{
				LogicalID:    name,
				ResourceType: t.Resources[name].Type,
				Requires:     target,
			})
			removed[name] = true
			added = true
		}
		if !added {
			return cascades
		}
	}
}

// findValueReference returns the first removed logical id a value references
// through a direct-reference or attribute-access node.
func findValueReference(value any, removed map[string]bool) (string, bool) {
	switch v := value.(type) {
	case map[string]any:
		if id, ok := asRef(v); ok {
			if removed[id] {
				return id, true
			}
			return "", false
		}
		if tok, ok := asGetAtt(v); ok {
			if removed[tok.LogicalID] {
				return tok.LogicalID, true
			}
			return "", false
		}
		for _, key := range sortedKeys(v) {
			if id, found := findValueReference(v[key], removed); found {
				return id, true
			}
		}
		return "", false
	case []any:
		for _, item := range v {
			if id, found := findValueReference(item, removed); found {
				return id, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
