// Package decisions turns a set of drifted resources into the per-resource
// actions the remediation run will execute.
package decisions

import (
	"fmt"
	"sort"

	"driftremediator/internal/models"
	"driftremediator/internal/plan"
	"driftremediator/pkg/logging"
)

// Collector produces per-resource remediation decisions for a drift report
//
//go:generate mockery --name=Collector --output=./mocks
type Collector interface {
	// Collect assigns an action to every drifted resource. Resources not
	// assigned an action are treated as skipped.
	Collect(modified, deleted []models.DriftedResource, autoAccept bool) (models.InteractiveDecisions, error)
}

// AutoCollector assigns default actions without prompting: modified
// resources are re-synchronized in place and deleted resources are removed
// from the stack.
type AutoCollector struct {
	logger logging.Logger
}

// NewAutoCollector creates a collector that applies default actions.
func NewAutoCollector(logger logging.Logger) *AutoCollector {
	if logger == nil {
		logger = logging.NewComponentLogger("decisions")
	}
	return &AutoCollector{logger: logger}
}

// Collect maps modified resources to the autofix bucket and deleted
// resources to the remove bucket. It refuses to decide anything unless the
// caller accepted defaults, since the actions mutate the stack.
func (c *AutoCollector) Collect(modified, deleted []models.DriftedResource, autoAccept bool) (models.InteractiveDecisions, error) {
	if !autoAccept {
		return models.InteractiveDecisions{}, fmt.Errorf("refusing to choose default actions without --auto-accept; provide a plan file or re-run with --auto-accept")
	}

	decisions := models.InteractiveDecisions{}
	for _, res := range sortResources(modified) {
		c.logger.Info("Auto-accepting fix for modified resource %s (%s)", res.LogicalID, res.ResourceType)
		decisions.Autofix = append(decisions.Autofix, res)
	}
	for _, res := range sortResources(deleted) {
		c.logger.Info("Auto-accepting removal of deleted resource %s (%s)", res.LogicalID, res.ResourceType)
		decisions.Remove = append(decisions.Remove, res)
	}
	return decisions, nil
}

// PlanCollector replays the decisions recorded in a remediation plan file.
type PlanCollector struct {
	plan   *plan.RemediationPlan
	logger logging.Logger
}

// NewPlanCollector creates a collector backed by a previously saved plan.
func NewPlanCollector(p *plan.RemediationPlan, logger logging.Logger) *PlanCollector {
	if logger == nil {
		logger = logging.NewComponentLogger("decisions")
	}
	return &PlanCollector{plan: p, logger: logger}
}

// Collect resolves the plan's decisions against the current drift report.
// The live report wins: a plan decision for a resource that no longer
// drifts is dropped, and a resource that drifts now but has no plan entry
// is skipped.
func (c *PlanCollector) Collect(modified, deleted []models.DriftedResource, _ bool) (models.InteractiveDecisions, error) {
	current := make(map[string]models.DriftedResource, len(modified)+len(deleted))
	for _, res := range modified {
		current[res.LogicalID] = res
	}
	for _, res := range deleted {
		current[res.LogicalID] = res
	}

	planned, err := plan.ToDecisions(c.plan)
	if err != nil {
		return models.InteractiveDecisions{}, err
	}

	decisions := models.InteractiveDecisions{}
	for name := range c.plan.Resources {
		if _, ok := current[name]; !ok {
			c.logger.Warn("Plan entry %s no longer drifts, dropping it", name)
		}
	}
	for _, res := range planned.Autofix {
		if live, ok := current[res.LogicalID]; ok {
			decisions.Autofix = append(decisions.Autofix, live)
			delete(current, res.LogicalID)
		}
	}
	for _, dec := range planned.Reimport {
		if live, ok := current[dec.Resource.LogicalID]; ok {
			decisions.Reimport = append(decisions.Reimport, models.ReimportDecision{
				Resource:         live,
				ImportIdentifier: dec.ImportIdentifier,
			})
			delete(current, dec.Resource.LogicalID)
		}
	}
	for _, res := range planned.Remove {
		if live, ok := current[res.LogicalID]; ok {
			decisions.Remove = append(decisions.Remove, live)
			delete(current, res.LogicalID)
		}
	}
	for _, res := range planned.Skip {
		if live, ok := current[res.LogicalID]; ok {
			decisions.Skip = append(decisions.Skip, live)
			delete(current, res.LogicalID)
		}
	}
	for _, name := range sortedNames(current) {
		c.logger.Warn("Resource %s drifts but has no plan entry, skipping it", name)
		decisions.Skip = append(decisions.Skip, current[name])
	}
	return decisions, nil
}

func sortResources(resources []models.DriftedResource) []models.DriftedResource {
	out := make([]models.DriftedResource, len(resources))
	copy(out, resources)
	sort.Slice(out, func(i, j int) bool { return out[i].LogicalID < out[j].LogicalID })
	return out
}

func sortedNames(m map[string]models.DriftedResource) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
