package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"

	"driftremediator/internal/models"
)

// CloudFormationAPI defines the interface for the CloudFormation operations we need to mock
//
//go:generate mockery --name=CloudFormationAPI --output=./mocks
type CloudFormationAPI interface {
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	GetTemplate(ctx context.Context, params *cloudformation.GetTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.GetTemplateOutput, error)
	GetTemplateSummary(ctx context.Context, params *cloudformation.GetTemplateSummaryInput, optFns ...func(*cloudformation.Options)) (*cloudformation.GetTemplateSummaryOutput, error)
	DetectStackDrift(ctx context.Context, params *cloudformation.DetectStackDriftInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DetectStackDriftOutput, error)
	DescribeStackDriftDetectionStatus(ctx context.Context, params *cloudformation.DescribeStackDriftDetectionStatusInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackDriftDetectionStatusOutput, error)
	DescribeStackResourceDrifts(ctx context.Context, params *cloudformation.DescribeStackResourceDriftsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourceDriftsOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	CreateChangeSet(ctx context.Context, params *cloudformation.CreateChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateChangeSetOutput, error)
	DescribeChangeSet(ctx context.Context, params *cloudformation.DescribeChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeChangeSetOutput, error)
	ExecuteChangeSet(ctx context.Context, params *cloudformation.ExecuteChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ExecuteChangeSetOutput, error)
}

// ResourceImport binds a logical id to the identifier map an import
// operation re-registers it with.
type ResourceImport struct {
	LogicalID    string
	ResourceType string
	Identifier   map[string]string
}

// StackServiceAPI defines the interface for control-plane stack operations
//
//go:generate mockery --name=StackServiceAPI --output=./mocks
type StackServiceAPI interface {
	// DescribeStack fetches the stack's identity, parameters and outputs.
	DescribeStack(ctx context.Context, stackName string) (*models.StackDetails, error)

	// GetTemplate fetches the stack's unprocessed template text.
	GetTemplate(ctx context.Context, stackName string) (string, error)

	// StartDriftDetection begins a drift detection run and returns its id.
	StartDriftDetection(ctx context.Context, stackName string) (string, error)

	// WaitForDriftDetection polls the run to completion and reports whether
	// any resource drifted.
	WaitForDriftDetection(ctx context.Context, stackName, detectionID string) (bool, error)

	// ListResourceDrifts returns every MODIFIED or DELETED resource drift.
	ListResourceDrifts(ctx context.Context, stackName string) ([]models.DriftedResource, error)

	// RequiredIdentifiers returns the schema-declared identifier key list per
	// resource type for the given template text.
	RequiredIdentifiers(ctx context.Context, templateText string) (map[string][]string, error)

	// UpdateStack applies a template and polls the update to a terminal
	// state. An update with nothing to change is a success no-op.
	UpdateStack(ctx context.Context, stackName, templateBody string, parameters map[string]string) error

	// CreateImportChangeSet creates an import-type change set and polls its
	// creation to completion, returning the change set id.
	CreateImportChangeSet(ctx context.Context, stackName, templateBody string, parameters map[string]string, imports []ResourceImport) (string, error)

	// ExecuteChangeSet executes a change set and polls the resulting stack
	// operation to a terminal state.
	ExecuteChangeSet(ctx context.Context, stackName, changeSetID string) error
}
