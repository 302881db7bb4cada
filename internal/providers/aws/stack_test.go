package aws_test

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"driftremediator/internal/models"
	aws "driftremediator/internal/providers/aws"
	"driftremediator/internal/providers/aws/mocks"
	"driftremediator/pkg/logging"
)

func testConfig() aws.Config {
	return aws.Config{
		PollInterval:      time.Millisecond,
		DetectionAttempts: 5,
		UpdateTimeout:     time.Second,
		ChangeSetTimeout:  time.Second,
	}
}

func newTestStackService(t *testing.T) (*aws.StackService, *mocks.CloudFormationAPI) {
	client := mocks.NewCloudFormationAPI(t)
	return aws.NewStackService(client, testConfig(), logging.NewMockLogger()), client
}

func TestDescribeStack(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackId: awssdk.String("arn:aws:cloudformation:eu-west-1:123456789012:stack/app-stack/a1b2c3"),
			Parameters: []types.Parameter{
				{ParameterKey: awssdk.String("Env"), ParameterValue: awssdk.String("prod")},
			},
			Outputs: []types.Output{
				{OutputKey: awssdk.String("BucketArn"), OutputValue: awssdk.String("arn:aws:s3:::b")},
			},
		}},
	}, nil).Once()

	details, err := svc.DescribeStack(context.Background(), "app-stack")

	require.NoError(t, err)
	assert.Equal(t, "app-stack", details.Name)
	assert.Equal(t, "arn:aws:cloudformation:eu-west-1:123456789012:stack/app-stack/a1b2c3", details.ID)
	assert.Equal(t, "eu-west-1", details.Region, "region comes from the stack id ARN")
	assert.Equal(t, map[string]string{"Env": "prod"}, details.Parameters)
	assert.Equal(t, map[string]string{"BucketArn": "arn:aws:s3:::b"}, details.Outputs)
}

func TestDescribeStackNotFound(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStacksOutput{}, nil).Once()

	_, err := svc.DescribeStack(context.Background(), "app-stack")

	require.Error(t, err)
	assert.True(t, aws.IsErrorCategory(err, aws.ErrNotFound))
}

func TestWaitForDriftDetectionPollsToCompletion(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStackDriftDetectionStatus", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStackDriftDetectionStatusOutput{
			DetectionStatus: types.StackDriftDetectionStatusDetectionInProgress,
		}, nil).Once()
	client.On("DescribeStackDriftDetectionStatus", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStackDriftDetectionStatusOutput{
			DetectionStatus:  types.StackDriftDetectionStatusDetectionComplete,
			StackDriftStatus: types.StackDriftStatusDrifted,
		}, nil).Once()

	drifted, err := svc.WaitForDriftDetection(context.Background(), "app-stack", "detect-1")

	require.NoError(t, err)
	assert.True(t, drifted)
}

func TestWaitForDriftDetectionFailure(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStackDriftDetectionStatus", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStackDriftDetectionStatusOutput{
			DetectionStatus:       types.StackDriftDetectionStatusDetectionFailed,
			DetectionStatusReason: awssdk.String("internal failure"),
		}, nil).Once()

	_, err := svc.WaitForDriftDetection(context.Background(), "app-stack", "detect-1")

	require.Error(t, err)
	assert.True(t, aws.IsErrorCategory(err, aws.ErrDetectionFailed))
	assert.Contains(t, err.Error(), "internal failure")
}

func TestWaitForDriftDetectionTimeout(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStackDriftDetectionStatus", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStackDriftDetectionStatusOutput{
			DetectionStatus: types.StackDriftDetectionStatusDetectionInProgress,
		}, nil).Times(5)

	_, err := svc.WaitForDriftDetection(context.Background(), "app-stack", "detect-1")

	require.Error(t, err)
	assert.True(t, aws.IsErrorCategory(err, aws.ErrDetectionTimeout))
}

func TestListResourceDriftsPaginatesAndConverts(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStackResourceDrifts", mock.Anything, mock.MatchedBy(func(in *cloudformation.DescribeStackResourceDriftsInput) bool {
		return in.NextToken == nil
	})).Return(&cloudformation.DescribeStackResourceDriftsOutput{
		StackResourceDrifts: []types.StackResourceDrift{{
			LogicalResourceId:        awssdk.String("Bucket"),
			ResourceType:             awssdk.String("AWS::S3::Bucket"),
			PhysicalResourceId:       awssdk.String("my-bucket"),
			StackResourceDriftStatus: types.StackResourceDriftStatusModified,
			ActualProperties:         awssdk.String(`{"BucketName":"my-bucket"}`),
			PropertyDifferences: []types.PropertyDifference{{
				PropertyPath:   awssdk.String("/VersioningConfiguration/Status"),
				ExpectedValue:  awssdk.String("Suspended"),
				ActualValue:    awssdk.String("Enabled"),
				DifferenceType: types.DifferenceTypeNotEqual,
			}},
		}},
		NextToken: awssdk.String("page-2"),
	}, nil).Once()
	client.On("DescribeStackResourceDrifts", mock.Anything, mock.MatchedBy(func(in *cloudformation.DescribeStackResourceDriftsInput) bool {
		return awssdk.ToString(in.NextToken) == "page-2"
	})).Return(&cloudformation.DescribeStackResourceDriftsOutput{
		StackResourceDrifts: []types.StackResourceDrift{{
			LogicalResourceId:        awssdk.String("Service"),
			ResourceType:             awssdk.String("AWS::ECS::Service"),
			StackResourceDriftStatus: types.StackResourceDriftStatusDeleted,
			PhysicalResourceIdContext: []types.PhysicalResourceIdContextKeyValuePair{
				{Key: awssdk.String("Cluster"), Value: awssdk.String("web")},
			},
		}},
	}, nil).Once()

	drifts, err := svc.ListResourceDrifts(context.Background(), "app-stack")

	require.NoError(t, err)
	require.Len(t, drifts, 2)
	assert.Equal(t, "Bucket", drifts[0].LogicalID)
	assert.Equal(t, models.DriftStatusModified, drifts[0].DriftStatus)
	assert.Equal(t, map[string]any{"BucketName": "my-bucket"}, drifts[0].ActualProperties)
	require.Len(t, drifts[0].PropertyDiffs, 1)
	assert.Equal(t, "/VersioningConfiguration/Status", drifts[0].PropertyDiffs[0].PropertyPath)
	assert.True(t, drifts[1].IsDeleted())
	require.Len(t, drifts[1].PhysicalIDContext, 1)
	assert.Equal(t, "Cluster", drifts[1].PhysicalIDContext[0].Key)
}

func TestListResourceDriftsComputesMissingDiffs(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("DescribeStackResourceDrifts", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStackResourceDriftsOutput{
			StackResourceDrifts: []types.StackResourceDrift{{
				LogicalResourceId:        awssdk.String("Bucket"),
				ResourceType:             awssdk.String("AWS::S3::Bucket"),
				StackResourceDriftStatus: types.StackResourceDriftStatusModified,
				ExpectedProperties:       awssdk.String(`{"BucketName":"a"}`),
				ActualProperties:         awssdk.String(`{"BucketName":"b"}`),
			}},
		}, nil).Once()

	drifts, err := svc.ListResourceDrifts(context.Background(), "app-stack")

	require.NoError(t, err)
	require.Len(t, drifts, 1)
	require.Len(t, drifts[0].PropertyDiffs, 1)
	assert.Equal(t, "/BucketName", drifts[0].PropertyDiffs[0].PropertyPath)
}

func TestRequiredIdentifiers(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("GetTemplateSummary", mock.Anything, mock.Anything).
		Return(&cloudformation.GetTemplateSummaryOutput{
			ResourceIdentifierSummaries: []types.ResourceIdentifierSummary{
				{ResourceType: awssdk.String("AWS::S3::Bucket"), ResourceIdentifiers: []string{"BucketName"}},
				{ResourceType: awssdk.String("AWS::ECS::Service"), ResourceIdentifiers: []string{"ServiceArn", "Cluster"}},
			},
		}, nil).Once()

	keys, err := svc.RequiredIdentifiers(context.Background(), "{}")

	require.NoError(t, err)
	assert.Equal(t, []string{"BucketName"}, keys["AWS::S3::Bucket"])
	assert.Equal(t, []string{"ServiceArn", "Cluster"}, keys["AWS::ECS::Service"])
}

func TestUpdateStackNoOpIsSuccess(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("UpdateStack", mock.Anything, mock.Anything).
		Return(nil, errors.New("ValidationError: No updates are to be performed.")).Once()

	err := svc.UpdateStack(context.Background(), "app-stack", "{}", nil)

	require.NoError(t, err)
	client.AssertNotCalled(t, "DescribeStacks", mock.Anything, mock.Anything)
}

func TestUpdateStackPollsToCompletion(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("UpdateStack", mock.Anything, mock.MatchedBy(func(in *cloudformation.UpdateStackInput) bool {
		return len(in.Capabilities) == 3 && len(in.Parameters) == 1
	})).Return(&cloudformation.UpdateStackOutput{}, nil).Once()
	client.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{{StackStatus: types.StackStatusUpdateInProgress}},
		}, nil).Once()
	client.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{{StackStatus: types.StackStatusUpdateComplete}},
		}, nil).Once()

	err := svc.UpdateStack(context.Background(), "app-stack", "{}", map[string]string{"Env": "prod"})

	require.NoError(t, err)
}

func TestUpdateStackRollback(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("UpdateStack", mock.Anything, mock.Anything).
		Return(&cloudformation.UpdateStackOutput{}, nil).Once()
	client.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{{
				StackStatus:       types.StackStatusUpdateRollbackComplete,
				StackStatusReason: awssdk.String("resource failed to stabilize"),
			}},
		}, nil).Once()

	err := svc.UpdateStack(context.Background(), "app-stack", "{}", nil)

	require.Error(t, err)
	assert.True(t, aws.IsErrorCategory(err, aws.ErrUpdateRolledBack))
	assert.Contains(t, err.Error(), "resource failed to stabilize")
}

func TestCreateImportChangeSet(t *testing.T) {
	svc, client := newTestStackService(t)

	var created *cloudformation.CreateChangeSetInput
	client.On("CreateChangeSet", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*cloudformation.CreateChangeSetInput)
		}).Return(&cloudformation.CreateChangeSetOutput{Id: awssdk.String("cs-1")}, nil).Once()
	client.On("DescribeChangeSet", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeChangeSetOutput{Status: types.ChangeSetStatusCreateInProgress}, nil).Once()
	client.On("DescribeChangeSet", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeChangeSetOutput{Status: types.ChangeSetStatusCreateComplete}, nil).Once()

	id, err := svc.CreateImportChangeSet(context.Background(), "app-stack", "{}", nil, []aws.ResourceImport{{
		LogicalID:    "Bucket",
		ResourceType: "AWS::S3::Bucket",
		Identifier:   map[string]string{"BucketName": "my-bucket"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "cs-1", id)
	require.NotNil(t, created)
	assert.Equal(t, types.ChangeSetTypeImport, created.ChangeSetType)
	require.Len(t, created.ResourcesToImport, 1)
	assert.Equal(t, "Bucket", awssdk.ToString(created.ResourcesToImport[0].LogicalResourceId))
	assert.Equal(t, map[string]string{"BucketName": "my-bucket"}, created.ResourcesToImport[0].ResourceIdentifier)
}

func TestCreateImportChangeSetFailed(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("CreateChangeSet", mock.Anything, mock.Anything).
		Return(&cloudformation.CreateChangeSetOutput{Id: awssdk.String("cs-1")}, nil).Once()
	client.On("DescribeChangeSet", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeChangeSetOutput{
			Status:       types.ChangeSetStatusFailed,
			StatusReason: awssdk.String("resource already managed"),
		}, nil).Once()

	_, err := svc.CreateImportChangeSet(context.Background(), "app-stack", "{}", nil, nil)

	require.Error(t, err)
	assert.True(t, aws.IsErrorCategory(err, aws.ErrChangeSetFailed))
	assert.Contains(t, err.Error(), "resource already managed")
}

func TestExecuteChangeSet(t *testing.T) {
	svc, client := newTestStackService(t)
	client.On("ExecuteChangeSet", mock.Anything, mock.Anything).
		Return(&cloudformation.ExecuteChangeSetOutput{}, nil).Once()
	client.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(&cloudformation.DescribeStacksOutput{
			Stacks: []types.Stack{{StackStatus: types.StackStatusImportComplete}},
		}, nil).Once()

	err := svc.ExecuteChangeSet(context.Background(), "app-stack", "cs-1")

	require.NoError(t, err)
}
