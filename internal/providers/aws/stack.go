package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/google/uuid"

	"driftremediator/internal/driftcheck"
	"driftremediator/internal/identifier"
	"driftremediator/internal/models"
	"driftremediator/pkg/logging"
)

// Config tunes the polling behavior of the stack service.
type Config struct {
	// PollInterval is the fixed delay between status polls.
	PollInterval time.Duration

	// DetectionAttempts bounds drift detection polling.
	DetectionAttempts int

	// UpdateTimeout is the wall-clock budget for one stack update.
	UpdateTimeout time.Duration

	// ChangeSetTimeout is the wall-clock budget for change-set creation.
	ChangeSetTimeout time.Duration
}

// DefaultConfig returns the polling defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:      5 * time.Second,
		DetectionAttempts: 120,
		UpdateTimeout:     30 * time.Minute,
		ChangeSetTimeout:  10 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.DetectionAttempts <= 0 {
		c.DetectionAttempts = d.DetectionAttempts
	}
	if c.UpdateTimeout <= 0 {
		c.UpdateTimeout = d.UpdateTimeout
	}
	if c.ChangeSetTimeout <= 0 {
		c.ChangeSetTimeout = d.ChangeSetTimeout
	}
	return c
}

// updateCapabilities are always passed on mutating calls; remediation only
// ever re-applies definitions the template already carries.
var updateCapabilities = []types.Capability{
	types.CapabilityCapabilityIam,
	types.CapabilityCapabilityNamedIam,
	types.CapabilityCapabilityAutoExpand,
}

// StackService handles interactions with the CloudFormation control plane.
type StackService struct {
	client CloudFormationAPI
	cfg    Config
	logger logging.Logger
}

// NewStackServiceWithDefaultConfig creates a StackService with the default
// AWS SDK configuration chain. Zero fields in svcCfg fall back to defaults.
func NewStackServiceWithDefaultConfig(ctx context.Context, svcCfg Config, logger logging.Logger) (*StackService, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewStackService(cloudformation.NewFromConfig(cfg), svcCfg, logger), nil
}

// NewStackService creates a StackService with a provided client.
func NewStackService(client CloudFormationAPI, cfg Config, logger logging.Logger) *StackService {
	return &StackService{
		client: client,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// DescribeStack fetches the stack's identity, parameters and outputs.
func (s *StackService) DescribeStack(ctx context.Context, stackName string) (*models.StackDetails, error) {
	out, err := s.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, classifyError(err, stackName, "failed to describe stack")
	}
	if len(out.Stacks) == 0 {
		return nil, NewError(ErrNotFound, stackName, "stack not found", nil)
	}

	stack := out.Stacks[0]
	details := &models.StackDetails{
		Name:       stackName,
		ID:         aws.ToString(stack.StackId),
		Parameters: make(map[string]string, len(stack.Parameters)),
		Outputs:    make(map[string]string, len(stack.Outputs)),
	}
	// The stack id is an ARN carrying the region the stack lives in.
	if arn, ok := identifier.ParseARN(details.ID); ok {
		details.Region = arn.Region
	}
	for _, p := range stack.Parameters {
		details.Parameters[aws.ToString(p.ParameterKey)] = aws.ToString(p.ParameterValue)
	}
	for _, o := range stack.Outputs {
		details.Outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}
	return details, nil
}

// GetTemplate fetches the stack's unprocessed template text.
func (s *StackService) GetTemplate(ctx context.Context, stackName string) (string, error) {
	out, err := s.client.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName:     aws.String(stackName),
		TemplateStage: types.TemplateStageOriginal,
	})
	if err != nil {
		return "", classifyError(err, stackName, "failed to fetch stack template")
	}
	return aws.ToString(out.TemplateBody), nil
}

// StartDriftDetection begins a drift detection run and returns its id.
func (s *StackService) StartDriftDetection(ctx context.Context, stackName string) (string, error) {
	out, err := s.client.DetectStackDrift(ctx, &cloudformation.DetectStackDriftInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return "", classifyError(err, stackName, "failed to start drift detection")
	}
	id := aws.ToString(out.StackDriftDetectionId)
	s.logger.Info("Started drift detection for stack %s (run %s)", stackName, id)
	return id, nil
}

// WaitForDriftDetection polls a detection run with a fixed delay and bounded
// attempts, reporting whether the stack drifted.
func (s *StackService) WaitForDriftDetection(ctx context.Context, stackName, detectionID string) (bool, error) {
	for attempt := 0; attempt < s.cfg.DetectionAttempts; attempt++ {
		out, err := s.client.DescribeStackDriftDetectionStatus(ctx, &cloudformation.DescribeStackDriftDetectionStatusInput{
			StackDriftDetectionId: aws.String(detectionID),
		})
		if err != nil {
			return false, classifyError(err, stackName, "failed to poll drift detection status")
		}

		switch out.DetectionStatus {
		case types.StackDriftDetectionStatusDetectionComplete:
			drifted := out.StackDriftStatus == types.StackDriftStatusDrifted
			s.logger.Info("Drift detection for stack %s complete: drifted=%t", stackName, drifted)
			return drifted, nil
		case types.StackDriftDetectionStatusDetectionFailed:
			reason := aws.ToString(out.DetectionStatusReason)
			return false, NewError(ErrDetectionFailed, stackName,
				fmt.Sprintf("drift detection failed: %s", reason), nil)
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}
	}
	return false, NewError(ErrDetectionTimeout, stackName,
		fmt.Sprintf("drift detection did not complete within %d polls", s.cfg.DetectionAttempts), nil)
}

// ListResourceDrifts returns every resource drift with MODIFIED or DELETED
// status, following pagination.
func (s *StackService) ListResourceDrifts(ctx context.Context, stackName string) ([]models.DriftedResource, error) {
	var drifts []models.DriftedResource
	var nextToken *string

	for {
		out, err := s.client.DescribeStackResourceDrifts(ctx, &cloudformation.DescribeStackResourceDriftsInput{
			StackName: aws.String(stackName),
			StackResourceDriftStatusFilters: []types.StackResourceDriftStatus{
				types.StackResourceDriftStatusModified,
				types.StackResourceDriftStatusDeleted,
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classifyError(err, stackName, "failed to list resource drifts")
		}

		for _, rd := range out.StackResourceDrifts {
			drifts = append(drifts, convertResourceDrift(rd, s.logger))
		}

		if out.NextToken == nil {
			return drifts, nil
		}
		nextToken = out.NextToken
	}
}

func convertResourceDrift(rd types.StackResourceDrift, logger logging.Logger) models.DriftedResource {
	resource := models.DriftedResource{
		LogicalID:          aws.ToString(rd.LogicalResourceId),
		ResourceType:       aws.ToString(rd.ResourceType),
		PhysicalID:         aws.ToString(rd.PhysicalResourceId),
		DriftStatus:        models.DriftStatus(rd.StackResourceDriftStatus),
		ExpectedProperties: parsePropertyBag(rd.ExpectedProperties, resourceLabel(rd), "expected", logger),
		ActualProperties:   parsePropertyBag(rd.ActualProperties, resourceLabel(rd), "actual", logger),
	}
	for _, pd := range rd.PropertyDifferences {
		resource.PropertyDiffs = append(resource.PropertyDiffs, models.PropertyDiff{
			PropertyPath:   aws.ToString(pd.PropertyPath),
			ExpectedValue:  aws.ToString(pd.ExpectedValue),
			ActualValue:    aws.ToString(pd.ActualValue),
			DifferenceType: string(pd.DifferenceType),
		})
	}
	for _, pair := range rd.PhysicalResourceIdContext {
		resource.PhysicalIDContext = append(resource.PhysicalIDContext, models.ContextPair{
			Key:   aws.ToString(pair.Key),
			Value: aws.ToString(pair.Value),
		})
	}
	// The control plane occasionally reports drift with the property bags
	// but no per-property differences; compute them locally in that case.
	if len(resource.PropertyDiffs) == 0 && resource.ExpectedProperties != nil && resource.ActualProperties != nil {
		resource.PropertyDiffs = driftcheck.ComparePropertyBags(resource.ExpectedProperties, resource.ActualProperties)
	}
	return resource
}

func resourceLabel(rd types.StackResourceDrift) string {
	return aws.ToString(rd.LogicalResourceId)
}

func parsePropertyBag(body *string, logicalID, kind string, logger logging.Logger) map[string]any {
	if body == nil || *body == "" {
		return nil
	}
	var bag map[string]any
	if err := json.Unmarshal([]byte(*body), &bag); err != nil {
		logger.Warn("Could not parse %s properties of %s: %v", kind, logicalID, err)
		return nil
	}
	return bag
}

// RequiredIdentifiers returns the schema-declared identifier key list per
// resource type for the given template text.
func (s *StackService) RequiredIdentifiers(ctx context.Context, templateText string) (map[string][]string, error) {
	out, err := s.client.GetTemplateSummary(ctx, &cloudformation.GetTemplateSummaryInput{
		TemplateBody: aws.String(templateText),
	})
	if err != nil {
		return nil, classifyError(err, "", "failed to fetch template summary")
	}

	keys := make(map[string][]string, len(out.ResourceIdentifierSummaries))
	for _, summary := range out.ResourceIdentifierSummaries {
		if resourceType := aws.ToString(summary.ResourceType); resourceType != "" {
			keys[resourceType] = summary.ResourceIdentifiers
		}
	}
	return keys, nil
}

// UpdateStack applies a template and polls the update to a terminal state.
// An update whose sole failure reason is that nothing changed is a success.
func (s *StackService) UpdateStack(ctx context.Context, stackName, templateBody string, parameters map[string]string) error {
	_, err := s.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(stackName),
		TemplateBody: aws.String(templateBody),
		Parameters:   buildParameters(parameters),
		Capabilities: updateCapabilities,
	})
	if err != nil {
		if IsNoUpdateError(err) {
			s.logger.Info("Stack %s already matches the requested template; nothing to update", stackName)
			return nil
		}
		return classifyError(err, stackName, "failed to start stack update")
	}

	return s.waitForStackOperation(ctx, stackName, s.cfg.UpdateTimeout)
}

// CreateImportChangeSet creates an import-type change set and polls its
// creation to completion.
func (s *StackService) CreateImportChangeSet(ctx context.Context, stackName, templateBody string, parameters map[string]string, imports []ResourceImport) (string, error) {
	resourcesToImport := make([]types.ResourceToImport, 0, len(imports))
	for _, imp := range imports {
		resourcesToImport = append(resourcesToImport, types.ResourceToImport{
			LogicalResourceId:  aws.String(imp.LogicalID),
			ResourceType:       aws.String(imp.ResourceType),
			ResourceIdentifier: imp.Identifier,
		})
	}

	changeSetName := fmt.Sprintf("drift-import-%s", uuid.NewString())
	out, err := s.client.CreateChangeSet(ctx, &cloudformation.CreateChangeSetInput{
		StackName:         aws.String(stackName),
		ChangeSetName:     aws.String(changeSetName),
		ChangeSetType:     types.ChangeSetTypeImport,
		TemplateBody:      aws.String(templateBody),
		Parameters:        buildParameters(parameters),
		Capabilities:      updateCapabilities,
		ResourcesToImport: resourcesToImport,
	})
	if err != nil {
		return "", NewError(ErrChangeSetFailed, stackName, "failed to create import change set", err)
	}

	changeSetID := aws.ToString(out.Id)
	s.logger.Info("Created import change set %s for stack %s", changeSetName, stackName)

	deadline := time.Now().Add(s.cfg.ChangeSetTimeout)
	for {
		desc, err := s.client.DescribeChangeSet(ctx, &cloudformation.DescribeChangeSetInput{
			StackName:     aws.String(stackName),
			ChangeSetName: aws.String(changeSetID),
		})
		if err != nil {
			return "", classifyError(err, stackName, "failed to poll change set status")
		}

		switch desc.Status {
		case types.ChangeSetStatusCreateComplete:
			return changeSetID, nil
		case types.ChangeSetStatusFailed:
			return "", NewError(ErrChangeSetFailed, stackName,
				fmt.Sprintf("change set creation failed: %s", aws.ToString(desc.StatusReason)), nil)
		}

		if time.Now().After(deadline) {
			return "", NewError(ErrChangeSetTimeout, stackName,
				fmt.Sprintf("change set was not ready within %s", s.cfg.ChangeSetTimeout), nil)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}
	}
}

// ExecuteChangeSet executes a change set and polls the resulting stack
// operation to a terminal state.
func (s *StackService) ExecuteChangeSet(ctx context.Context, stackName, changeSetID string) error {
	_, err := s.client.ExecuteChangeSet(ctx, &cloudformation.ExecuteChangeSetInput{
		StackName:     aws.String(stackName),
		ChangeSetName: aws.String(changeSetID),
	})
	if err != nil {
		return NewError(ErrChangeSetFailed, stackName, "failed to execute change set", err)
	}
	return s.waitForStackOperation(ctx, stackName, s.cfg.UpdateTimeout)
}

// waitForStackOperation polls the stack status to a terminal state within
// the wall-clock budget.
func (s *StackService) waitForStackOperation(ctx context.Context, stackName string, budget time.Duration) error {
	deadline := time.Now().Add(budget)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}

		out, err := s.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
			StackName: aws.String(stackName),
		})
		if err != nil {
			return classifyError(err, stackName, "failed to poll stack status")
		}
		if len(out.Stacks) == 0 {
			return NewError(ErrNotFound, stackName, "stack disappeared while polling", nil)
		}

		status := out.Stacks[0].StackStatus
		s.logger.Debug("Stack %s status: %s", stackName, status)

		switch status {
		case types.StackStatusUpdateComplete, types.StackStatusImportComplete:
			return nil
		case types.StackStatusUpdateRollbackComplete, types.StackStatusUpdateRollbackFailed,
			types.StackStatusImportRollbackComplete, types.StackStatusImportRollbackFailed:
			return NewError(ErrUpdateRolledBack, stackName,
				fmt.Sprintf("stack operation was rolled back (status %s): %s", status, aws.ToString(out.Stacks[0].StackStatusReason)), nil)
		case types.StackStatusUpdateFailed:
			return NewError(ErrUpdateFailed, stackName,
				fmt.Sprintf("stack operation failed: %s", aws.ToString(out.Stacks[0].StackStatusReason)), nil)
		}

		if time.Now().After(deadline) {
			return NewError(ErrUpdateTimeout, stackName,
				fmt.Sprintf("stack operation did not finish within %s", budget), nil)
		}
	}
}

func buildParameters(parameters map[string]string) []types.Parameter {
	if len(parameters) == 0 {
		return nil
	}
	out := make([]types.Parameter, 0, len(parameters))
	for key, value := range parameters {
		out = append(out, types.Parameter{
			ParameterKey:   aws.String(key),
			ParameterValue: aws.String(value),
		})
	}
	return out
}
