package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse converts control-plane template text into the structured form. Both
// JSON and YAML bodies are accepted, including the YAML short-form intrinsic
// tags (!Ref, !GetAtt, !Sub, ...), which are normalized to their long form so
// the transformer only ever sees one representation.
func Parse(text string) (*Template, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("failed to parse template text: %w", err)
	}
	value, err := decodeNode(&root)
	if err != nil {
		return nil, err
	}
	top, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template root must be a mapping, got %T", value)
	}
	return buildTemplate(top)
}

// Render produces the canonical JSON body sent on update calls.
func Render(t *Template) (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return string(data), nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			value, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key] = value
		}
		return wrapShortTag(n.Tag, out), nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			value, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return wrapShortTag(n.Tag, out), nil
	case yaml.ScalarNode:
		if isShortTag(n.Tag) {
			return wrapShortTag(n.Tag, n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func isShortTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

// wrapShortTag rewrites a YAML short-form intrinsic into its long form:
// !Ref x becomes {"Ref": x}, !GetAtt a.b becomes {"Fn::GetAtt": [a, b]}, any
// other !Name payload becomes {"Fn::Name": payload}.
func wrapShortTag(tag string, value any) any {
	if !isShortTag(tag) {
		return value
	}
	name := tag[1:]
	switch name {
	case "Ref":
		return map[string]any{"Ref": value}
	case "Condition":
		return map[string]any{"Condition": value}
	case "GetAtt":
		if s, ok := value.(string); ok {
			parts := strings.SplitN(s, ".", 2)
			if len(parts) == 2 {
				return map[string]any{"Fn::GetAtt": []any{parts[0], parts[1]}}
			}
		}
		return map[string]any{"Fn::GetAtt": value}
	default:
		return map[string]any{"Fn::" + name: value}
	}
}

func buildTemplate(top map[string]any) (*Template, error) {
	t := &Template{
		AWSTemplateFormatVersion: stringField(top, "AWSTemplateFormatVersion"),
		Description:              stringField(top, "Description"),
		Transform:                top["Transform"],
		Parameters:               mapField(top, "Parameters"),
		Mappings:                 mapField(top, "Mappings"),
		Conditions:               mapField(top, "Conditions"),
	}

	resources := mapField(top, "Resources")
	if resources == nil {
		return nil, fmt.Errorf("template has no Resources section")
	}
	t.Resources = make(map[string]*Resource, len(resources))
	for name, raw := range resources {
		body, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("resource %s is not a mapping", name)
		}
		resourceType := stringField(body, "Type")
		if resourceType == "" {
			return nil, fmt.Errorf("resource %s has no Type", name)
		}
		t.Resources[name] = &Resource{
			Type:                resourceType,
			Properties:          mapField(body, "Properties"),
			DependsOn:           body["DependsOn"],
			Condition:           stringField(body, "Condition"),
			DeletionPolicy:      stringField(body, "DeletionPolicy"),
			UpdateReplacePolicy: stringField(body, "UpdateReplacePolicy"),
			CreationPolicy:      body["CreationPolicy"],
			UpdatePolicy:        body["UpdatePolicy"],
			Metadata:            mapField(body, "Metadata"),
		}
	}

	if outputs := mapField(top, "Outputs"); outputs != nil {
		t.Outputs = make(map[string]*Output, len(outputs))
		for name, raw := range outputs {
			body, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("output %s is not a mapping", name)
			}
			t.Outputs[name] = &Output{
				Description: stringField(body, "Description"),
				Value:       body["Value"],
				Export:      mapField(body, "Export"),
				Condition:   stringField(body, "Condition"),
			}
		}
	}
	return t, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}
