// Package orchestrator drives the remediation state machine: detect drift,
// decide actions, checkpoint, then retain, resolve, remove, import and
// restore in a fixed stage order.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"driftremediator/internal/decisions"
	"driftremediator/internal/identifier"
	"driftremediator/internal/models"
	"driftremediator/internal/plan"
	aws "driftremediator/internal/providers/aws"
	"driftremediator/internal/recovery"
	"driftremediator/internal/template"
	"driftremediator/pkg/logging"
)

// Service orchestrates the drift remediation process.
type Service struct {
	config    Config
	stack     aws.StackServiceAPI
	collector decisions.Collector
	store     recovery.Store
	logger    logging.Logger
}

// NewService creates an orchestrator with the given collaborators.
func NewService(
	config Config,
	stack aws.StackServiceAPI,
	collector decisions.Collector,
	store recovery.Store,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.NewComponentLogger("orchestrator")
	}
	return &Service{
		config:    config,
		stack:     stack,
		collector: collector,
		store:     store,
		logger:    logger,
	}
}

// NewDefaultService creates a service with default implementations of
// dependencies: the real control-plane client, auto-accept decision
// collection and a file-based checkpoint store.
func NewDefaultService(config Config) (*Service, error) {
	logger := logging.NewComponentLogger("orchestrator")
	svcCfg := aws.Config{
		PollInterval:      config.PollInterval,
		DetectionAttempts: config.DetectionAttempts,
		UpdateTimeout:     config.UpdateTimeout,
		ChangeSetTimeout:  config.ChangeSetTimeout,
	}
	stackService, err := aws.NewStackServiceWithDefaultConfig(context.Background(), svcCfg, logging.NewComponentLogger("aws"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize control-plane client: %w", err)
	}

	collector := decisions.NewAutoCollector(logging.NewComponentLogger("decisions"))
	store := recovery.NewFileStore(config.CheckpointDir, logging.NewComponentLogger("recovery"))
	return NewService(config, stackService, collector, store, logger), nil
}

// runState carries the intermediate products of a run between stages.
type runState struct {
	result *Result

	details      *models.StackDetails
	templateText string
	tmpl         *template.Template

	decided models.InteractiveDecisions

	// Identifier maps for resources being re-registered, keyed by logical id.
	importIdentifiers map[string]map[string]string

	// Removal sets. retainedRemovals is applied with the retain-everywhere
	// update; fullRemovals is everything gone by the end of the Removed
	// stage; permanentRemovals is what never comes back.
	retainedRemovals  map[string]bool
	fullRemovals      map[string]bool
	permanentRemovals map[string]bool

	tokens []template.Token
	table  template.ValueTable
}

// Run executes the remediation workflow to completion or first failure.
// The returned Result is populated even on error, up to the failing stage.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if s.config.StackName == "" {
		return nil, fmt.Errorf("stack name is required")
	}

	state := &runState{
		result: &Result{
			StackName: s.config.StackName,
			RunID:     uuid.NewString()[:8],
		},
		table: template.ValueTable{},
	}

	type stageStep struct {
		stage   Stage
		handler func(context.Context, *runState) (bool, error)
	}
	steps := []stageStep{
		{StageDriftDetecting, s.stageDriftDetecting},
		{StageDeciding, s.stageDeciding},
		{StageCheckpointSaved, s.stageCheckpointSaved},
		{StageRetained, s.stageRetained},
		{StageReferencesResolved, s.stageReferencesResolved},
		{StageRemoved, s.stageRemoved},
		{StageImported, s.stageImported},
		{StageRestored, s.stageRestored},
	}

	for _, step := range steps {
		s.logger.Debug("Entering stage %s", step.stage)
		proceed, err := step.handler(ctx, state)
		if err != nil {
			state.result.FinalStage = StageFailed
			state.result.Stage = StageFailed.String()
			return state.result, fmt.Errorf("stage %s: %w", step.stage, err)
		}
		state.result.FinalStage = step.stage
		state.result.Stage = step.stage.String()
		if !proceed {
			break
		}
	}

	state.result.FinalStage = StageDone
	state.result.Stage = StageDone.String()
	s.logger.Info("Remediation run %s finished", state.result.RunID)
	return state.result, nil
}

// CreatePlan runs detection and decision collection only, returning a plan
// for offline review. No stack mutation happens.
func (s *Service) CreatePlan(ctx context.Context) (*plan.RemediationPlan, error) {
	if s.config.StackName == "" {
		return nil, fmt.Errorf("stack name is required")
	}

	state := &runState{
		result: &Result{
			StackName: s.config.StackName,
			RunID:     uuid.NewString()[:8],
		},
		table: template.ValueTable{},
	}
	proceed, err := s.stageDriftDetecting(ctx, state)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, &NoActionableResourcesError{StackName: s.config.StackName}
	}
	if _, err := s.stageDeciding(ctx, state); err != nil {
		return nil, err
	}
	if state.decided.ActionableCount() == 0 {
		return nil, &NoActionableResourcesError{StackName: s.config.StackName}
	}

	meta := plan.Metadata{
		StackName:   state.details.Name,
		StackID:     state.details.ID,
		Region:      state.details.Region,
		RunID:       state.result.RunID,
		GeneratedAt: time.Now().UTC(),
	}
	return plan.Build(meta, state.decided), nil
}

// stageDriftDetecting fetches the stack, starts a detection run and polls
// it to completion. An in-sync stack short-circuits the whole run.
func (s *Service) stageDriftDetecting(ctx context.Context, state *runState) (bool, error) {
	details, err := s.stack.DescribeStack(ctx, s.config.StackName)
	if err != nil {
		return false, err
	}
	state.details = details

	templateText, err := s.stack.GetTemplate(ctx, s.config.StackName)
	if err != nil {
		return false, err
	}
	state.templateText = templateText

	tmpl, err := template.Parse(templateText)
	if err != nil {
		return false, fmt.Errorf("parsing stack template: %w", err)
	}
	state.tmpl = tmpl

	detectionID, err := s.stack.StartDriftDetection(ctx, s.config.StackName)
	if err != nil {
		return false, err
	}
	s.logger.Info("Drift detection %s started for stack %s", detectionID, s.config.StackName)

	drifted, err := s.stack.WaitForDriftDetection(ctx, s.config.StackName, detectionID)
	if err != nil {
		return false, err
	}
	state.result.Drifted = drifted
	if !drifted {
		s.logger.Info("Stack %s is in sync, nothing to remediate", s.config.StackName)
		return false, nil
	}
	return true, nil
}

// stageDeciding lists the drifted resources, partitions out anything that
// cannot be imported, and collects an action per remaining resource.
func (s *Service) stageDeciding(ctx context.Context, state *runState) (bool, error) {
	drifts, err := s.stack.ListResourceDrifts(ctx, s.config.StackName)
	if err != nil {
		return false, err
	}

	requiredKeys := s.identifierKeys(ctx, state.templateText)

	var modified, deleted []models.DriftedResource
	for _, res := range drifts {
		if !s.importable(res.ResourceType, requiredKeys) {
			s.logger.Warn("Resource %s (%s) is not importable, skipping", res.LogicalID, res.ResourceType)
			state.result.Skipped = append(state.result.Skipped, ResourceOutcome{
				LogicalID:    res.LogicalID,
				ResourceType: res.ResourceType,
				Action:       plan.ActionSkip,
				Status:       OutcomeSkipped,
				Detail:       "resource type does not support import",
			})
			continue
		}
		if res.IsDeleted() {
			deleted = append(deleted, res)
		} else {
			modified = append(modified, res)
		}
	}

	decided, err := s.collector.Collect(modified, deleted, s.config.AutoAccept)
	if err != nil {
		return false, err
	}
	state.decided = s.resolveIdentifiers(decided, requiredKeys, state)

	for _, res := range state.decided.Skip {
		state.result.Skipped = append(state.result.Skipped, ResourceOutcome{
			LogicalID:    res.LogicalID,
			ResourceType: res.ResourceType,
			Action:       plan.ActionSkip,
			Status:       OutcomeSkipped,
		})
	}

	if state.decided.ActionableCount() == 0 {
		s.logger.Info("No actionable resources for stack %s, ending run", s.config.StackName)
		return false, nil
	}
	return true, nil
}

// identifierKeys prefers the schema-declared identifier key lists and falls
// back to the static registry when the summary call fails.
func (s *Service) identifierKeys(ctx context.Context, templateText string) map[string][]string {
	keys, err := s.stack.RequiredIdentifiers(ctx, templateText)
	if err != nil {
		s.logger.Warn("Could not fetch identifier schema, using built-in registry: %v", err)
		return nil
	}
	return keys
}

func (s *Service) importable(resourceType string, schemaKeys map[string][]string) bool {
	if schemaKeys != nil {
		if keys, ok := schemaKeys[resourceType]; ok {
			return len(keys) > 0
		}
	}
	return identifier.IsImportable(resourceType)
}

func (s *Service) requiredKeysFor(resourceType string, schemaKeys map[string][]string) []string {
	if schemaKeys != nil {
		if keys, ok := schemaKeys[resourceType]; ok && len(keys) > 0 {
			return keys
		}
	}
	keys, _ := identifier.RequiredKeys(resourceType)
	return keys
}

// resolveIdentifiers resolves an import identity for every autofix and
// reimport target. A resource whose identity cannot be resolved is demoted
// to skip rather than failing the run.
func (s *Service) resolveIdentifiers(decided models.InteractiveDecisions, schemaKeys map[string][]string, state *runState) models.InteractiveDecisions {
	out := models.InteractiveDecisions{
		Remove: decided.Remove,
		Skip:   decided.Skip,
	}
	state.importIdentifiers = make(map[string]map[string]string)

	skip := func(res models.DriftedResource, err error) {
		s.logger.Warn("Cannot resolve import identity for %s: %v", res.LogicalID, err)
		out.Skip = append(out.Skip, res)
		state.result.Skipped = append(state.result.Skipped, ResourceOutcome{
			LogicalID:    res.LogicalID,
			ResourceType: res.ResourceType,
			Action:       plan.ActionSkip,
			Status:       OutcomeSkipped,
			Detail:       err.Error(),
		})
	}

	for _, res := range decided.Autofix {
		keys := s.requiredKeysFor(res.ResourceType, schemaKeys)
		id, err := identifier.FromResource(res, keys)
		if err != nil {
			skip(res, err)
			continue
		}
		out.Autofix = append(out.Autofix, res)
		state.importIdentifiers[res.LogicalID] = id
	}
	for _, dec := range decided.Reimport {
		keys := s.requiredKeysFor(dec.Resource.ResourceType, schemaKeys)
		id, err := identifier.FromPhysicalID(dec.Resource.ResourceType, dec.ImportIdentifier, keys)
		if err != nil {
			skip(dec.Resource, err)
			continue
		}
		out.Reimport = append(out.Reimport, dec)
		state.importIdentifiers[dec.Resource.LogicalID] = id
	}
	return out
}

// stageCheckpointSaved persists the pristine template and the in-scope
// logical ids before the first mutating call.
func (s *Service) stageCheckpointSaved(_ context.Context, state *runState) (bool, error) {
	s.computeRemovalSets(state)

	var inScope []string
	for _, res := range state.decided.Autofix {
		inScope = append(inScope, res.LogicalID)
	}
	for _, dec := range state.decided.Reimport {
		inScope = append(inScope, dec.Resource.LogicalID)
	}
	for _, res := range state.decided.Remove {
		inScope = append(inScope, res.LogicalID)
	}

	path, err := s.store.Save(recovery.Checkpoint{
		RunID:        state.result.RunID,
		StackName:    state.details.Name,
		StackID:      state.details.ID,
		TemplateBody: state.templateText,
		Parameters:   state.details.Parameters,
		LogicalIDs:   inScope,
	})
	if err != nil {
		return false, fmt.Errorf("saving checkpoint: %w", err)
	}
	state.result.CheckpointPath = path
	return true, nil
}

// computeRemovalSets derives the three removal sets from the decisions.
// Deleted resources must leave the template before any in-place update, so
// they and their cascades form the retained-stage set. Everything being
// re-imported leaves and comes back; the rest is permanent.
func (s *Service) computeRemovalSets(state *runState) {
	importTargets := make(map[string]bool)
	for _, res := range state.decided.Autofix {
		importTargets[res.LogicalID] = true
	}
	for _, dec := range state.decided.Reimport {
		importTargets[dec.Resource.LogicalID] = true
	}

	state.retainedRemovals = make(map[string]bool)
	state.fullRemovals = make(map[string]bool)
	state.permanentRemovals = make(map[string]bool)

	mark := func(res models.DriftedResource, permanent bool) {
		state.fullRemovals[res.LogicalID] = true
		if res.IsDeleted() {
			state.retainedRemovals[res.LogicalID] = true
		}
		if permanent {
			state.permanentRemovals[res.LogicalID] = true
		}
	}
	for _, res := range state.decided.Autofix {
		mark(res, false)
	}
	for _, dec := range state.decided.Reimport {
		mark(dec.Resource, false)
	}
	for _, res := range state.decided.Remove {
		mark(res, true)
	}

	// Resources whose properties reference something being removed must go
	// too, unless they are coming back through the import.
	for _, cascade := range template.AnalyzeCascadeRemovals(state.tmpl, state.fullRemovals) {
		state.fullRemovals[cascade.LogicalID] = true
		if importTargets[cascade.LogicalID] {
			continue
		}
		state.permanentRemovals[cascade.LogicalID] = true
		s.logger.Warn("Resource %s must be removed because it references %s", cascade.LogicalID, cascade.Requires)
		state.result.Outcomes = append(state.result.Outcomes, ResourceOutcome{
			LogicalID:    cascade.LogicalID,
			ResourceType: cascade.ResourceType,
			Action:       plan.ActionRemove,
			Status:       OutcomeRemoved,
			Detail:       fmt.Sprintf("cascade removal, references %s", cascade.Requires),
		})
	}
	// Cascades of retained-stage removals are retained-stage too: a resource
	// still referencing a deleted one would make the first update invalid.
	// Import targets among them leave here and come back with the import.
	for _, cascade := range template.AnalyzeCascadeRemovals(state.tmpl, state.retainedRemovals) {
		state.retainedRemovals[cascade.LogicalID] = true
	}
}

// stageRetained issues one update forcing retain on every resource, folding
// in removal of deleted resources since a deleted resource cannot carry an
// in-place metadata change.
func (s *Service) stageRetained(ctx context.Context, state *runState) (bool, error) {
	retained := template.TransformForRemoval(state.tmpl, state.retainedRemovals, nil)
	body, err := template.Render(retained)
	if err != nil {
		return false, fmt.Errorf("rendering retain template: %w", err)
	}
	s.logger.Info("Applying retain-everywhere update to stack %s", s.config.StackName)
	if err := s.stack.UpdateStack(ctx, s.config.StackName, body, state.details.Parameters); err != nil {
		return false, err
	}
	return true, nil
}

// stageReferencesResolved captures, as literals, every attribute value other
// resources read from a resource that is about to be deleted. The values
// are exported through temporary stack outputs and read back by position.
func (s *Service) stageReferencesResolved(ctx context.Context, state *runState) (bool, error) {
	// Only still-live resources can be resolved; deleted ones are gone.
	liveRemovals := make(map[string]bool)
	for name := range state.fullRemovals {
		if !state.retainedRemovals[name] {
			liveRemovals[name] = true
		}
	}
	resolver := template.TransformForRemoval(state.tmpl, state.retainedRemovals, nil)
	state.tokens = template.CollectReferences(resolver, liveRemovals)
	if len(state.tokens) == 0 {
		return true, nil
	}

	if resolver.Outputs == nil {
		resolver.Outputs = make(map[string]*template.Output)
	}
	for i, token := range state.tokens {
		resolver.Outputs[fmt.Sprintf("DriftRef%d", i)] = &template.Output{Value: token.Intrinsic()}
	}
	body, err := template.Render(resolver)
	if err != nil {
		return false, fmt.Errorf("rendering resolution template: %w", err)
	}
	s.logger.Info("Resolving %d cross-resource references on stack %s", len(state.tokens), s.config.StackName)
	if err := s.stack.UpdateStack(ctx, s.config.StackName, body, state.details.Parameters); err != nil {
		return false, err
	}

	current, err := s.stack.DescribeStack(ctx, s.config.StackName)
	if err != nil {
		return false, err
	}
	for i, token := range state.tokens {
		value, ok := current.Outputs[fmt.Sprintf("DriftRef%d", i)]
		if !ok {
			return false, fmt.Errorf("resolution output for %s missing from stack outputs", token)
		}
		state.table[token.String()] = value
	}
	return true, nil
}

// stageRemoved deletes the in-scope resource definitions from the stack,
// baking every resolved reference value in as a literal.
func (s *Service) stageRemoved(ctx context.Context, state *runState) (bool, error) {
	removed := template.TransformForRemoval(state.tmpl, state.fullRemovals, state.table)
	body, err := template.Render(removed)
	if err != nil {
		return false, fmt.Errorf("rendering removal template: %w", err)
	}
	s.logger.Info("Removing %d resource definitions from stack %s", len(state.fullRemovals), s.config.StackName)
	if err := s.stack.UpdateStack(ctx, s.config.StackName, body, state.details.Parameters); err != nil {
		return false, err
	}
	return true, nil
}

// stageImported re-registers the autofix and reimport targets through an
// import-type change set, overlaying observed properties where available.
func (s *Service) stageImported(ctx context.Context, state *runState) (bool, error) {
	if len(state.decided.Autofix)+len(state.decided.Reimport) == 0 {
		return true, nil
	}

	base := template.TransformForRemoval(state.tmpl, state.fullRemovals, state.table)
	var overlays []template.ImportOverlay
	var imports []aws.ResourceImport

	addTarget := func(res models.DriftedResource, overlay template.ImportOverlay) error {
		original, ok := state.tmpl.Resources[res.LogicalID]
		if !ok {
			return fmt.Errorf("resource %s not present in stack template", res.LogicalID)
		}
		// Permanently removed resources are absent from the import template,
		// so the target may not reference or depend on them.
		base.Resources[res.LogicalID] = template.AdaptResourceForImport(original, state.permanentRemovals, state.table)
		overlays = append(overlays, overlay)
		imports = append(imports, aws.ResourceImport{
			LogicalID:    res.LogicalID,
			ResourceType: res.ResourceType,
			Identifier:   state.importIdentifiers[res.LogicalID],
		})
		return nil
	}

	for _, res := range state.decided.Autofix {
		overlay := template.ImportOverlay{LogicalID: res.LogicalID, Properties: res.ActualProperties}
		if err := addTarget(res, overlay); err != nil {
			return false, err
		}
	}
	for _, dec := range state.decided.Reimport {
		overlay := template.ImportOverlay{LogicalID: dec.Resource.LogicalID, KeepProperties: true}
		if err := addTarget(dec.Resource, overlay); err != nil {
			return false, err
		}
	}

	importTemplate, warnings := template.PrepareForImport(base, overlays)
	state.result.Warnings = append(state.result.Warnings, warnings...)
	body, err := template.Render(importTemplate)
	if err != nil {
		return false, fmt.Errorf("rendering import template: %w", err)
	}

	s.logger.Info("Importing %d resources into stack %s", len(imports), s.config.StackName)
	changeSetID, err := s.stack.CreateImportChangeSet(ctx, s.config.StackName, body, state.details.Parameters, imports)
	if err != nil {
		return false, err
	}
	if err := s.stack.ExecuteChangeSet(ctx, s.config.StackName, changeSetID); err != nil {
		return false, err
	}

	for _, res := range state.decided.Autofix {
		state.result.Outcomes = append(state.result.Outcomes, ResourceOutcome{
			LogicalID:    res.LogicalID,
			ResourceType: res.ResourceType,
			Action:       plan.ActionAutofix,
			Status:       OutcomeRemediated,
		})
	}
	for _, dec := range state.decided.Reimport {
		state.result.Outcomes = append(state.result.Outcomes, ResourceOutcome{
			LogicalID:    dec.Resource.LogicalID,
			ResourceType: dec.Resource.ResourceType,
			Action:       plan.ActionReimport,
			Status:       OutcomeRemediated,
			Detail:       fmt.Sprintf("re-registered against %s", dec.ImportIdentifier),
		})
	}
	return true, nil
}

// stageRestored applies the final template: the pristine original when
// nothing was permanently removed, otherwise the original minus the
// permanent removals, with authored deletion policies back in force.
func (s *Service) stageRestored(ctx context.Context, state *runState) (bool, error) {
	var body string
	var err error
	if len(state.permanentRemovals) == 0 {
		body = state.templateText
	} else {
		restored := template.TransformForRestore(state.tmpl, state.permanentRemovals, state.table)
		body, err = template.Render(restored)
		if err != nil {
			return false, fmt.Errorf("rendering restore template: %w", err)
		}
	}
	s.logger.Info("Restoring stack %s to its final template", s.config.StackName)
	if err := s.stack.UpdateStack(ctx, s.config.StackName, body, state.details.Parameters); err != nil {
		return false, err
	}

	for _, res := range state.decided.Remove {
		state.result.Outcomes = append(state.result.Outcomes, ResourceOutcome{
			LogicalID:    res.LogicalID,
			ResourceType: res.ResourceType,
			Action:       plan.ActionRemove,
			Status:       OutcomeRemoved,
		})
	}
	return true, nil
}
