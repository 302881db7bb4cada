package template

import (
	"regexp"
	"strings"
)

// Token is the canonical key for a cross-resource reference: either a direct
// logical-id reference or an (id, attribute) access.
type Token struct {
	LogicalID string
	Attribute string // empty for a direct reference
}

// String renders the token in its canonical "Name" or "Name.Attr" form.
func (t Token) String() string {
	if t.Attribute == "" {
		return t.LogicalID
	}
	return t.LogicalID + "." + t.Attribute
}

// Intrinsic returns the reference node the token stands for, suitable for use
// as a temporary resolution Output value.
func (t Token) Intrinsic() any {
	if t.Attribute == "" {
		return map[string]any{"Ref": t.LogicalID}
	}
	return map[string]any{"Fn::GetAtt": []any{t.LogicalID, t.Attribute}}
}

// ValueTable maps canonical token keys to the literal values the control
// plane resolved them to.
type ValueTable map[string]string

// pseudoParameters are the reserved placeholder names a templated string may
// reference. They belong to the platform, never to a resource, and are never
// resolved or rewritten here.
var pseudoParameters = map[string]bool{
	"AWS::StackName":        true,
	"AWS::StackId":          true,
	"AWS::Region":           true,
	"AWS::AccountId":        true,
	"AWS::Partition":        true,
	"AWS::NoValue":          true,
	"AWS::NotificationARNs": true,
	"AWS::URLSuffix":        true,
}

// subPlaceholderPattern matches ${...} placeholders in a templated string,
// including the escaped ${!literal} form.
var subPlaceholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// asRef reports whether v is a direct-reference node and returns its target.
func asRef(v map[string]any) (string, bool) {
	if len(v) != 1 {
		return "", false
	}
	target, ok := v["Ref"]
	if !ok {
		return "", false
	}
	id, ok := target.(string)
	return id, ok
}

// asGetAtt reports whether v is an attribute-access node. Both the list form
// ["Name", "Attr"] and the dotted string form "Name.Attr" are accepted; in
// the dotted form the attribute may itself contain dots.
func asGetAtt(v map[string]any) (Token, bool) {
	if len(v) != 1 {
		return Token{}, false
	}
	target, ok := v["Fn::GetAtt"]
	if !ok {
		return Token{}, false
	}
	switch t := target.(type) {
	case string:
		parts := strings.SplitN(t, ".", 2)
		if len(parts) != 2 {
			return Token{}, false
		}
		return Token{LogicalID: parts[0], Attribute: parts[1]}, true
	case []any:
		if len(t) != 2 {
			return Token{}, false
		}
		id, ok1 := t[0].(string)
		attr, ok2 := t[1].(string)
		if !ok1 || !ok2 {
			return Token{}, false
		}
		return Token{LogicalID: id, Attribute: attr}, true
	default:
		return Token{}, false
	}
}

// asSub reports whether v is a templated-string node and returns the format
// string plus the optional explicit substitution map.
func asSub(v map[string]any) (string, map[string]any, bool) {
	if len(v) != 1 {
		return "", nil, false
	}
	target, ok := v["Fn::Sub"]
	if !ok {
		return "", nil, false
	}
	switch t := target.(type) {
	case string:
		return t, nil, true
	case []any:
		if len(t) == 0 {
			return "", nil, false
		}
		format, ok := t[0].(string)
		if !ok {
			return "", nil, false
		}
		var vars map[string]any
		if len(t) > 1 {
			vars, _ = t[1].(map[string]any)
		}
		return format, vars, true
	default:
		return "", nil, false
	}
}

// subPlaceholderToken converts one ${...} placeholder name into a reference
// token. Escaped literals, pseudo parameters and names bound by the explicit
// substitution map are not references and yield ok=false.
func subPlaceholderToken(name string, vars map[string]any) (Token, bool) {
	if strings.HasPrefix(name, "!") {
		return Token{}, false
	}
	if pseudoParameters[name] {
		return Token{}, false
	}
	if _, bound := vars[name]; bound {
		return Token{}, false
	}
	if idx := strings.Index(name, "."); idx > 0 {
		return Token{LogicalID: name[:idx], Attribute: name[idx+1:]}, true
	}
	return Token{LogicalID: name}, true
}

// tokenCollector accumulates reference tokens preserving first-seen order.
type tokenCollector struct {
	order []Token
	seen  map[string]bool
}

func newTokenCollector() *tokenCollector {
	return &tokenCollector{seen: make(map[string]bool)}
}

func (c *tokenCollector) add(t Token) {
	key := t.String()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.order = append(c.order, t)
}
