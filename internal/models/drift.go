package models

// DriftStatus is the per-resource drift verdict reported by the control plane.
type DriftStatus string

const (
	// DriftStatusModified means the live resource exists but its configuration
	// diverged from the template definition.
	DriftStatusModified DriftStatus = "MODIFIED"

	// DriftStatusDeleted means the live resource was deleted out from under
	// the template.
	DriftStatusDeleted DriftStatus = "DELETED"
)

// PropertyDiff describes a single field-level difference on a drifted resource.
type PropertyDiff struct {
	PropertyPath   string `yaml:"propertyPath" json:"property_path"`
	ExpectedValue  string `yaml:"expectedValue,omitempty" json:"expected_value,omitempty"`
	ActualValue    string `yaml:"actualValue,omitempty" json:"actual_value,omitempty"`
	DifferenceType string `yaml:"differenceType,omitempty" json:"difference_type,omitempty"`
}

// ContextPair is one ordered key/value entry of a multi-part physical identity.
// Some resource types cannot express their runtime identity as a single string;
// the control plane reports those as an ordered list of pairs.
type ContextPair struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// DriftedResource is the immutable record of a single resource that drifted.
// It is produced by drift detection and consumed unchanged by the transformer,
// the resolver, the plan artifact and the orchestrator.
type DriftedResource struct {
	LogicalID          string         `yaml:"logicalId" json:"logical_id"`
	ResourceType       string         `yaml:"resourceType" json:"resource_type"`
	PhysicalID         string         `yaml:"physicalId,omitempty" json:"physical_id,omitempty"`
	DriftStatus        DriftStatus    `yaml:"driftStatus" json:"drift_status"`
	PropertyDiffs      []PropertyDiff `yaml:"propertyDiffs,omitempty" json:"property_diffs,omitempty"`
	ExpectedProperties map[string]any `yaml:"expectedProperties,omitempty" json:"expected_properties,omitempty"`
	ActualProperties   map[string]any `yaml:"actualProperties,omitempty" json:"actual_properties,omitempty"`
	PhysicalIDContext  []ContextPair  `yaml:"physicalIdContext,omitempty" json:"physical_id_context,omitempty"`
}

// IsDeleted reports whether the live resource no longer exists.
func (r DriftedResource) IsDeleted() bool {
	return r.DriftStatus == DriftStatusDeleted
}
