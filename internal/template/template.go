package template

// Resource is one resource definition inside a structured template.
type Resource struct {
	Type                string         `json:"Type"`
	Properties          map[string]any `json:"Properties,omitempty"`
	DependsOn           any            `json:"DependsOn,omitempty"` // string or []any of strings
	Condition           string         `json:"Condition,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty"`
	CreationPolicy      any            `json:"CreationPolicy,omitempty"`
	UpdatePolicy        any            `json:"UpdatePolicy,omitempty"`
	Metadata            map[string]any `json:"Metadata,omitempty"`
}

// Output is one stack output definition.
type Output struct {
	Description string         `json:"Description,omitempty"`
	Value       any            `json:"Value"`
	Export      map[string]any `json:"Export,omitempty"`
	Condition   string         `json:"Condition,omitempty"`
}

// Template is the structured in-memory form of an infrastructure template.
// All transform operations treat it as immutable and return new trees.
type Template struct {
	AWSTemplateFormatVersion string               `json:"AWSTemplateFormatVersion,omitempty"`
	Description              string               `json:"Description,omitempty"`
	Transform                any                  `json:"Transform,omitempty"`
	Parameters               map[string]any       `json:"Parameters,omitempty"`
	Mappings                 map[string]any       `json:"Mappings,omitempty"`
	Conditions               map[string]any       `json:"Conditions,omitempty"`
	Resources                map[string]*Resource `json:"Resources"`
	Outputs                  map[string]*Output   `json:"Outputs,omitempty"`
}

// DeletionPolicyRetain is the policy value forced onto every resource before
// any mutating stack operation.
const DeletionPolicyRetain = "Retain"

// Placeholder names used when a removal drains the template of resources.
// A template must never have zero resources, so an inert resource gated by an
// always-false condition is substituted instead.
const (
	placeholderResourceName  = "DriftRemediationPlaceholder"
	placeholderConditionName = "DriftRemediationNeverCreate"
	placeholderResourceType  = "AWS::CloudFormation::WaitConditionHandle"
)

// Clone returns a deep copy. The copy shares no mutable state with the
// original, so callers may freely rewrite it.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := &Template{
		AWSTemplateFormatVersion: t.AWSTemplateFormatVersion,
		Description:              t.Description,
		Transform:                cloneValue(t.Transform),
	}
	if t.Parameters != nil {
		out.Parameters = cloneMap(t.Parameters)
	}
	if t.Mappings != nil {
		out.Mappings = cloneMap(t.Mappings)
	}
	if t.Conditions != nil {
		out.Conditions = cloneMap(t.Conditions)
	}
	if t.Resources != nil {
		out.Resources = make(map[string]*Resource, len(t.Resources))
		for name, res := range t.Resources {
			out.Resources[name] = res.clone()
		}
	}
	if t.Outputs != nil {
		out.Outputs = make(map[string]*Output, len(t.Outputs))
		for name, o := range t.Outputs {
			out.Outputs[name] = o.clone()
		}
	}
	return out
}

func (r *Resource) clone() *Resource {
	if r == nil {
		return nil
	}
	return &Resource{
		Type:                r.Type,
		Properties:          cloneMap(r.Properties),
		DependsOn:           cloneValue(r.DependsOn),
		Condition:           r.Condition,
		DeletionPolicy:      r.DeletionPolicy,
		UpdateReplacePolicy: r.UpdateReplacePolicy,
		CreationPolicy:      cloneValue(r.CreationPolicy),
		UpdatePolicy:        cloneValue(r.UpdatePolicy),
		Metadata:            cloneMap(r.Metadata),
	}
}

func (o *Output) clone() *Output {
	if o == nil {
		return nil
	}
	return &Output{
		Description: o.Description,
		Value:       cloneValue(o.Value),
		Export:      cloneMap(o.Export),
		Condition:   o.Condition,
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// placeholderTemplate builds the fixed substitute used when removal empties
// the Resources section: one inert resource whose condition never holds.
func placeholderTemplate(base *Template) *Template {
	out := &Template{
		AWSTemplateFormatVersion: base.AWSTemplateFormatVersion,
		Description:              base.Description,
		Parameters:               cloneMap(base.Parameters),
		Conditions: map[string]any{
			placeholderConditionName: map[string]any{
				"Fn::Equals": []any{"true", "false"},
			},
		},
		Resources: map[string]*Resource{
			placeholderResourceName: {
				Type:      placeholderResourceType,
				Condition: placeholderConditionName,
			},
		},
	}
	return out
}
