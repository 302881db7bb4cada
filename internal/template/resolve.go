package template

import "strings"

// Mode selects what a resolution walk does when it meets a reference into the
// drifted set.
type Mode int

const (
	// ModeCollect records the reference token and leaves the node unchanged.
	ModeCollect Mode = iota

	// ModeResolve replaces the node with the looked-up literal when the value
	// table has one, and leaves it unchanged otherwise.
	ModeResolve
)

// ResolveValue walks a template value and handles every reference into
// driftedSet according to mode. The input value is never mutated; the
// returned value is a fresh tree. In collect mode the encountered tokens are
// returned in first-seen order.
func ResolveValue(value any, driftedSet map[string]bool, table ValueTable, mode Mode) (any, []Token) {
	col := newTokenCollector()
	out := resolveValue(value, driftedSet, table, mode, col)
	return out, col.order
}

// CollectReferences runs a collect-mode walk over all resource properties and
// output values and returns the ordered token set that must be externally
// resolved before the drifted resources can be removed.
func CollectReferences(t *Template, driftedSet map[string]bool) []Token {
	col := newTokenCollector()
	for _, name := range sortedResourceNames(t) {
		if driftedSet[name] {
			// References held by a resource that is itself being removed do
			// not need resolution; the holder disappears with its target.
			continue
		}
		resolveValue(t.Resources[name].Properties, driftedSet, nil, ModeCollect, col)
	}
	for _, name := range sortedOutputNames(t) {
		resolveValue(t.Outputs[name].Value, driftedSet, nil, ModeCollect, col)
	}
	return col.order
}

func resolveValue(value any, driftedSet map[string]bool, table ValueTable, mode Mode, col *tokenCollector) any {
	switch v := value.(type) {
	case map[string]any:
		if id, ok := asRef(v); ok && driftedSet[id] {
			tok := Token{LogicalID: id}
			if mode == ModeCollect {
				col.add(tok)
				return cloneValue(v)
			}
			if literal, found := table[tok.String()]; found {
				return literal
			}
			return cloneValue(v)
		}
		if tok, ok := asGetAtt(v); ok && driftedSet[tok.LogicalID] {
			if mode == ModeCollect {
				col.add(tok)
				return cloneValue(v)
			}
			if literal, found := table[tok.String()]; found {
				return literal
			}
			return cloneValue(v)
		}
		if format, vars, ok := asSub(v); ok {
			return resolveSub(format, vars, driftedSet, table, mode, col)
		}
		// Deterministic walk order keeps collected token order stable.
		out := make(map[string]any, len(v))
		for _, k := range sortedKeys(v) {
			out[k] = resolveValue(v[k], driftedSet, table, mode, col)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = resolveValue(item, driftedSet, table, mode, col)
		}
		return out
	default:
		return value
	}
}

// resolveSub handles a templated-string node placeholder by placeholder.
// Placeholders for pseudo parameters, explicit substitution variables and
// non-drifted logical ids stay untouched. Placeholders for drifted ids are
// collected, or baked in as literals when the table knows their value. When
// no placeholder remains the node collapses to a plain literal string, and
// any explicit substitution map is pruned to the names still referenced.
func resolveSub(format string, vars map[string]any, driftedSet map[string]bool, table ValueTable, mode Mode, col *tokenCollector) any {
	resolved := subPlaceholderPattern.ReplaceAllStringFunc(format, func(match string) string {
		name := match[2 : len(match)-1]
		tok, isRef := subPlaceholderToken(name, vars)
		if !isRef || !driftedSet[tok.LogicalID] {
			return match
		}
		if mode == ModeCollect {
			col.add(tok)
			return match
		}
		if literal, found := table[tok.String()]; found {
			return literal
		}
		return match
	})

	// Recurse into explicit substitution variable values; they are ordinary
	// template values and may themselves hold references.
	var newVars map[string]any
	if vars != nil {
		newVars = make(map[string]any, len(vars))
		for _, k := range sortedKeys(vars) {
			newVars[k] = resolveValue(vars[k], driftedSet, table, mode, col)
		}
	}

	if !strings.Contains(resolved, "${") {
		return resolved
	}

	if newVars != nil {
		for k := range newVars {
			if !strings.Contains(resolved, "${"+k+"}") {
				delete(newVars, k)
			}
		}
		if len(newVars) > 0 {
			return map[string]any{"Fn::Sub": []any{resolved, newVars}}
		}
	}
	return map[string]any{"Fn::Sub": resolved}
}
