package models

// ReimportDecision binds a drifted resource to a user-supplied replacement
// identity. The identity is the physical ID (or ARN) of the live resource the
// logical ID should be re-registered against.
type ReimportDecision struct {
	Resource         DriftedResource
	ImportIdentifier string
}

// InteractiveDecisions holds the per-resource remediation choices. Every
// drifted resource lands in exactly one of the four buckets; the union over
// all drifted resources is exhaustive.
type InteractiveDecisions struct {
	// Autofix resources are re-imported with their currently observed
	// properties, accepting the live state as the new template truth.
	Autofix []DriftedResource

	// Reimport resources are re-registered against a replacement identity the
	// user supplied.
	Reimport []ReimportDecision

	// Remove resources are permanently dropped from template management. The
	// live resource, if any, is left untouched.
	Remove []DriftedResource

	// Skip resources are left exactly as they are.
	Skip []DriftedResource
}

// ActionableCount returns the number of resources that require a stack
// mutation. Skipped resources never count.
func (d InteractiveDecisions) ActionableCount() int {
	return len(d.Autofix) + len(d.Reimport) + len(d.Remove)
}
