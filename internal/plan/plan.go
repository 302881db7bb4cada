package plan

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"driftremediator/internal/models"
)

// Version is the only plan file version this build reads and writes.
const Version = 1

// The four-valued action tag recorded per decision.
const (
	ActionAutofix  = "autofix"
	ActionReimport = "reimport"
	ActionRemove   = "remove"
	ActionSkip     = "skip"
)

var validActions = map[string]bool{
	ActionAutofix:  true,
	ActionReimport: true,
	ActionRemove:   true,
	ActionSkip:     true,
}

// Metadata identifies the stack a plan was generated for.
type Metadata struct {
	StackName   string    `yaml:"stackName"`
	StackID     string    `yaml:"stackId,omitempty"`
	Region      string    `yaml:"region,omitempty"`
	RunID       string    `yaml:"runId,omitempty"`
	GeneratedAt time.Time `yaml:"generatedAt,omitempty"`
}

// Decision is one reviewable, editable per-resource entry.
type Decision struct {
	LogicalID        string             `yaml:"logicalId"`
	ResourceType     string             `yaml:"resourceType,omitempty"`
	DriftStatus      models.DriftStatus `yaml:"driftStatus,omitempty"`
	PhysicalID       string             `yaml:"physicalId,omitempty"`
	Action           string             `yaml:"action"`
	ImportIdentifier string             `yaml:"importIdentifier,omitempty"`
}

// RemediationPlan is the versioned, durable record of per-resource decisions.
// Decisions are the editable surface; the snapshot map is the source of
// truth a decision must resolve against.
type RemediationPlan struct {
	Version   int                               `yaml:"version"`
	Metadata  Metadata                          `yaml:"metadata"`
	Decisions []Decision                        `yaml:"decisions"`
	Resources map[string]models.DriftedResource `yaml:"_resources"`
}

// Build flattens interactive decisions into a plan, in the stable bucket
// order autofix, reimport, remove, skip, and snapshots every drifted
// resource under its logical id.
func Build(meta Metadata, decisions models.InteractiveDecisions) *RemediationPlan {
	p := &RemediationPlan{
		Version:   Version,
		Metadata:  meta,
		Resources: make(map[string]models.DriftedResource),
	}

	add := func(r models.DriftedResource, action, importID string) {
		p.Decisions = append(p.Decisions, Decision{
			LogicalID:        r.LogicalID,
			ResourceType:     r.ResourceType,
			DriftStatus:      r.DriftStatus,
			PhysicalID:       r.PhysicalID,
			Action:           action,
			ImportIdentifier: importID,
		})
		p.Resources[r.LogicalID] = r
	}

	for _, r := range decisions.Autofix {
		add(r, ActionAutofix, "")
	}
	for _, d := range decisions.Reimport {
		add(d.Resource, ActionReimport, d.ImportIdentifier)
	}
	for _, r := range decisions.Remove {
		add(r, ActionRemove, "")
	}
	for _, r := range decisions.Skip {
		add(r, ActionSkip, "")
	}
	return p
}

// Serialize renders the plan as canonical indented text.
func Serialize(p *RemediationPlan) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to serialize plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize plan: %w", err)
	}
	return buf.Bytes(), nil
}

// Load parses and validates plan text. Every validation failure is fatal and
// names the offending logical id, field or value.
func Load(data []byte, expectedStackName string) (*RemediationPlan, error) {
	// The file is read twice: loosely, to report precise structural errors,
	// and strictly for the typed metadata and resource snapshot.
	var raw struct {
		Metadata  *Metadata                         `yaml:"metadata"`
		Resources map[string]models.DriftedResource `yaml:"_resources"`
	}

	var loose map[string]any
	if err := yaml.Unmarshal(data, &loose); err != nil {
		return nil, newInvalidPlanError("", "plan text is not parsable", err)
	}
	if loose == nil {
		return nil, newInvalidPlanError("", "plan text is empty", nil)
	}

	rawVersion, ok := loose["version"]
	if !ok {
		return nil, newInvalidPlanError("version", "plan has no version", nil)
	}
	version, ok := rawVersion.(int)
	if !ok || version != Version {
		return nil, newInvalidPlanError("version",
			fmt.Sprintf("unsupported plan version %v (this build reads version %d)", rawVersion, Version), nil)
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newInvalidPlanError("", "plan text does not match the plan schema", err)
	}

	if raw.Metadata == nil || raw.Metadata.StackName == "" {
		return nil, newInvalidPlanError("metadata.stackName", "plan metadata does not identify a stack", nil)
	}
	if expectedStackName != "" && raw.Metadata.StackName != expectedStackName {
		return nil, newInvalidPlanError("metadata.stackName",
			fmt.Sprintf("plan was generated for stack %q, not %q", raw.Metadata.StackName, expectedStackName), nil)
	}

	rawDecisions, ok := loose["decisions"]
	if !ok || rawDecisions == nil {
		return nil, newInvalidPlanError("decisions", "plan has no decisions list", nil)
	}
	decisionList, ok := rawDecisions.([]any)
	if !ok {
		return nil, newInvalidPlanError("decisions", "decisions must be a list", nil)
	}

	decisions := make([]Decision, 0, len(decisionList))
	for i, item := range decisionList {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, newInvalidPlanError("decisions",
				fmt.Sprintf("decision %d is not a mapping", i), nil)
		}
		d, err := decodeDecision(i, entry)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}

	if _, ok := loose["_resources"]; !ok {
		return nil, newInvalidPlanError("_resources", "plan has no resource snapshot", nil)
	}
	if raw.Resources == nil {
		raw.Resources = map[string]models.DriftedResource{}
	}

	return &RemediationPlan{
		Version:   version,
		Metadata:  *raw.Metadata,
		Decisions: decisions,
		Resources: raw.Resources,
	}, nil
}

func decodeDecision(index int, entry map[string]any) (Decision, error) {
	logicalID, _ := entry["logicalId"].(string)
	if logicalID == "" {
		return Decision{}, newInvalidPlanError("decisions",
			fmt.Sprintf("decision %d has no logicalId", index), nil)
	}
	action, _ := entry["action"].(string)
	if action == "" {
		return Decision{}, newDecisionError(logicalID, "decision has no action")
	}
	if !validActions[action] {
		return Decision{}, newDecisionError(logicalID,
			fmt.Sprintf("unknown action %q (expected autofix, reimport, remove or skip)", action))
	}
	importID, _ := entry["importIdentifier"].(string)
	if action == ActionReimport && importID == "" {
		return Decision{}, newDecisionError(logicalID, "reimport decision has no importIdentifier")
	}

	resourceType, _ := entry["resourceType"].(string)
	physicalID, _ := entry["physicalId"].(string)
	status, _ := entry["driftStatus"].(string)
	return Decision{
		LogicalID:        logicalID,
		ResourceType:     resourceType,
		DriftStatus:      models.DriftStatus(status),
		PhysicalID:       physicalID,
		Action:           action,
		ImportIdentifier: importID,
	}, nil
}

// ToDecisions expands a plan back into the four interactive buckets. A
// decision whose logical id is absent from the snapshot fails with
// DanglingReference; a snapshot entry with no matching decision is an
// implicit skip.
func ToDecisions(p *RemediationPlan) (models.InteractiveDecisions, error) {
	var out models.InteractiveDecisions

	decided := make(map[string]bool, len(p.Decisions))
	for _, d := range p.Decisions {
		resource, ok := p.Resources[d.LogicalID]
		if !ok {
			return models.InteractiveDecisions{}, NewDanglingReferenceError(d.LogicalID)
		}
		decided[d.LogicalID] = true

		switch d.Action {
		case ActionAutofix:
			out.Autofix = append(out.Autofix, resource)
		case ActionReimport:
			out.Reimport = append(out.Reimport, models.ReimportDecision{
				Resource:         resource,
				ImportIdentifier: d.ImportIdentifier,
			})
		case ActionRemove:
			out.Remove = append(out.Remove, resource)
		case ActionSkip:
			out.Skip = append(out.Skip, resource)
		default:
			return models.InteractiveDecisions{}, newDecisionError(d.LogicalID,
				fmt.Sprintf("unknown action %q", d.Action))
		}
	}

	undecided := make([]string, 0)
	for id := range p.Resources {
		if !decided[id] {
			undecided = append(undecided, id)
		}
	}
	sort.Strings(undecided)
	for _, id := range undecided {
		out.Skip = append(out.Skip, p.Resources[id])
	}

	return out, nil
}
