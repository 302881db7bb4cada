package template

import (
	"fmt"
	"sort"
)

// SetRetentionOnAll clones the template and forces every resource's deletion
// policy to Retain. This is the non-negotiable safety invariant: no stack
// mutation issued by the remediation pipeline may destroy a live resource.
func SetRetentionOnAll(t *Template) *Template {
	out := t.Clone()
	for _, res := range out.Resources {
		res.DeletionPolicy = DeletionPolicyRetain
	}
	return out
}

// TransformForRemoval clones the template, forces retention everywhere,
// resolves references into removalSet using table, deletes the resources in
// removalSet, strips them from dependency lists, and prunes Outputs that
// still structurally reference them. If the removal drains Resources, the
// fixed placeholder template is substituted instead.
func TransformForRemoval(t *Template, removalSet map[string]bool, table ValueTable) *Template {
	return transformRemoval(t, removalSet, table, true)
}

// TransformForRestore performs the same removal and reference-cleanup pass
// without the retention override, so that each surviving resource keeps its
// template-authored deletion policy. Used for the final restore update.
func TransformForRestore(t *Template, removalSet map[string]bool, table ValueTable) *Template {
	return transformRemoval(t, removalSet, table, false)
}

func transformRemoval(t *Template, removalSet map[string]bool, table ValueTable, forceRetain bool) *Template {
	out := t.Clone()

	if forceRetain {
		for _, res := range out.Resources {
			res.DeletionPolicy = DeletionPolicyRetain
		}
	}

	for name, res := range out.Resources {
		if removalSet[name] {
			continue
		}
		if res.Properties != nil {
			resolved, _ := ResolveValue(res.Properties, removalSet, table, ModeResolve)
			res.Properties = resolved.(map[string]any)
		}
	}
	for _, o := range out.Outputs {
		resolved, _ := ResolveValue(o.Value, removalSet, table, ModeResolve)
		o.Value = resolved
	}

	for name := range removalSet {
		delete(out.Resources, name)
	}

	for _, res := range out.Resources {
		res.DependsOn = stripDependencies(res.DependsOn, removalSet)
	}

	for name, o := range out.Outputs {
		if referencesAny(o.Value, removalSet) {
			delete(out.Outputs, name)
		}
	}
	if len(out.Outputs) == 0 {
		out.Outputs = nil
	}

	if len(out.Resources) == 0 {
		return placeholderTemplate(t)
	}
	return out
}

// stripDependencies removes the removed logical ids from a dependency list,
// handling both the bare-string and the list form. A list emptied by the
// filter is removed entirely.
func stripDependencies(dependsOn any, removalSet map[string]bool) any {
	switch dep := dependsOn.(type) {
	case string:
		if removalSet[dep] {
			return nil
		}
		return dep
	case []any:
		kept := make([]any, 0, len(dep))
		for _, item := range dep {
			if id, ok := item.(string); ok && removalSet[id] {
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			return nil
		}
		return kept
	default:
		return dependsOn
	}
}

// referencesAny reports whether a value still structurally references any of
// the given logical ids: a direct reference, an attribute access, or a
// templated-string placeholder, recursing into containers and into explicit
// substitution maps.
func referencesAny(value any, ids map[string]bool) bool {
	switch v := value.(type) {
	case map[string]any:
		if id, ok := asRef(v); ok {
			return ids[id]
		}
		if tok, ok := asGetAtt(v); ok {
			return ids[tok.LogicalID]
		}
		if format, vars, ok := asSub(v); ok {
			for _, match := range subPlaceholderPattern.FindAllStringSubmatch(format, -1) {
				if tok, isRef := subPlaceholderToken(match[1], vars); isRef && ids[tok.LogicalID] {
					return true
				}
			}
			for _, varValue := range vars {
				if referencesAny(varValue, ids) {
					return true
				}
			}
			return false
		}
		for _, item := range v {
			if referencesAny(item, ids) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range v {
			if referencesAny(item, ids) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AdaptResourceForImport returns a deep copy of a resource shaped for
// re-insertion into a post-removal template: value-level references into
// removedSet are baked in as literals where the table knows them, and
// dependency list entries naming removed resources are dropped.
func AdaptResourceForImport(r *Resource, removedSet map[string]bool, table ValueTable) *Resource {
	out := r.clone()
	if out.Properties != nil {
		resolved, _ := ResolveValue(out.Properties, removedSet, table, ModeResolve)
		out.Properties = resolved.(map[string]any)
	}
	out.DependsOn = stripDependencies(out.DependsOn, removedSet)
	return out
}

// ImportOverlay pairs a logical id with the observed property bag it should
// be imported with. KeepProperties marks a resource whose template-authored
// properties are the intended import source; for the rest, an empty bag
// means the live state could not be described and the template-authored
// properties are kept with a warning.
type ImportOverlay struct {
	LogicalID      string
	Properties     map[string]any
	KeepProperties bool
}

// PrepareForImport clones the template and shapes it for an import change
// set: Outputs are dropped (import rejects output mutation), each overlaid
// resource is forced to Retain, and its properties are replaced with the
// observed bag when one is available. Returned warnings name the overlays
// whose live state could not be described.
func PrepareForImport(t *Template, overlays []ImportOverlay) (*Template, []string) {
	out := t.Clone()
	out.Outputs = nil

	var warnings []string
	for _, overlay := range overlays {
		res, ok := out.Resources[overlay.LogicalID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("resource %s is not present in the import template", overlay.LogicalID))
			continue
		}
		res.DeletionPolicy = DeletionPolicyRetain
		switch {
		case overlay.KeepProperties:
		case len(overlay.Properties) > 0:
			res.Properties = cloneMap(overlay.Properties)
		default:
			warnings = append(warnings, fmt.Sprintf("live state of %s could not be described; keeping template properties", overlay.LogicalID))
		}
	}
	return out, warnings
}

func sortedResourceNames(t *Template) []string {
	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedOutputNames(t *Template) []string {
	names := make([]string, 0, len(t.Outputs))
	for name := range t.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
