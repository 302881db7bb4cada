package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftremediator/internal/models"
)

func TestFromPhysicalIDARNRules(t *testing.T) {
	tests := []struct {
		name         string
		resourceType string
		physicalID   string
		want         map[string]string
	}{
		{
			name:         "s3 bucket plain name",
			resourceType: "AWS::S3::Bucket",
			physicalID:   "arn:aws:s3:::my-bucket",
			want:         map[string]string{"BucketName": "my-bucket"},
		},
		{
			name:         "sqs queue url reconstructed",
			resourceType: "AWS::SQS::Queue",
			physicalID:   "arn:aws:sqs:us-east-1:123:my-queue",
			want:         map[string]string{"QueueUrl": "https://sqs.us-east-1.amazonaws.com/123/my-queue"},
		},
		{
			name:         "ecs service yields arn and cluster",
			resourceType: "AWS::ECS::Service",
			physicalID:   "arn:aws:ecs:us-east-1:123:service/cluster/svc",
			want: map[string]string{
				"ServiceArn": "arn:aws:ecs:us-east-1:123:service/cluster/svc",
				"Cluster":    "cluster",
			},
		},
		{
			name:         "iam role strips path",
			resourceType: "AWS::IAM::Role",
			physicalID:   "arn:aws:iam::123:role/service/MyRole",
			want:         map[string]string{"RoleName": "MyRole"},
		},
		{
			name:         "lambda function with qualifier",
			resourceType: "AWS::Lambda::Function",
			physicalID:   "arn:aws:lambda:us-east-1:123:function:my-fn:7",
			want:         map[string]string{"FunctionName": "my-fn"},
		},
		{
			name:         "log group with trailing wildcard",
			resourceType: "AWS::Logs::LogGroup",
			physicalID:   "arn:aws:logs:us-east-1:123:log-group:/aws/lambda/my-fn:*",
			want:         map[string]string{"LogGroupName": "/aws/lambda/my-fn"},
		},
		{
			name:         "dynamodb table kind slash name",
			resourceType: "AWS::DynamoDB::Table",
			physicalID:   "arn:aws:dynamodb:us-east-1:123:table/orders",
			want:         map[string]string{"TableName": "orders"},
		},
		{
			name:         "sns topic keeps whole arn",
			resourceType: "AWS::SNS::Topic",
			physicalID:   "arn:aws:sns:us-east-1:123:alerts",
			want:         map[string]string{"TopicArn": "arn:aws:sns:us-east-1:123:alerts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromPhysicalID(tt.resourceType, tt.physicalID, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromPhysicalIDFallbacks(t *testing.T) {
	// A non-ARN identity maps onto the primary (single) required key.
	got, err := FromPhysicalID("AWS::DynamoDB::Table", "orders", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TableName": "orders"}, got)

	// An unknown type with a schema-declared single key gets the raw value.
	got, err = FromPhysicalID("AWS::Custom::Widget", "w-123", []string{"WidgetId"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"WidgetId": "w-123"}, got)
}

func TestFromPhysicalIDUnresolvable(t *testing.T) {
	tests := []struct {
		name         string
		resourceType string
		physicalID   string
		requiredKeys []string
	}{
		{
			// A bare name cannot satisfy the two keys an ECS service needs.
			name:         "bare name with multi-key requirement",
			resourceType: "AWS::ECS::Service",
			physicalID:   "svc",
		},
		{
			name:         "unknown type with no keys",
			resourceType: "AWS::Custom::Widget",
			physicalID:   "w-123",
		},
		{
			name:         "empty identity",
			resourceType: "AWS::S3::Bucket",
			physicalID:   "",
		},
		{
			name:         "unknown type with multi-key requirement",
			resourceType: "AWS::Custom::Widget",
			physicalID:   "w-123",
			requiredKeys: []string{"WidgetId", "Scope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromPhysicalID(tt.resourceType, tt.physicalID, tt.requiredKeys)
			require.Error(t, err)
			assert.True(t, IsUnresolvable(err), "expected an unresolvable error, got %v", err)
		})
	}
}

func TestFromResourceMergeOrder(t *testing.T) {
	resource := models.DriftedResource{
		LogicalID:    "App",
		ResourceType: "AWS::ECS::Service",
		PhysicalID:   "arn:aws:ecs:us-east-1:123:service/cluster/svc",
		DriftStatus:  models.DriftStatusModified,
		PhysicalIDContext: []models.ContextPair{
			{Key: "Cluster", Value: "context-cluster"},
			{Key: "Irrelevant", Value: "ignored"},
		},
		ActualProperties: map[string]any{
			"Cluster": "property-cluster",
		},
	}

	got, err := FromResource(resource, nil)
	require.NoError(t, err)

	// Context pairs win over observed properties; the single remaining key
	// is satisfied by the raw runtime id.
	assert.Equal(t, map[string]string{
		"Cluster":    "context-cluster",
		"ServiceArn": "arn:aws:ecs:us-east-1:123:service/cluster/svc",
	}, got)
}

func TestFromResourceObservedProperties(t *testing.T) {
	resource := models.DriftedResource{
		LogicalID:    "Table",
		ResourceType: "AWS::DynamoDB::Table",
		DriftStatus:  models.DriftStatusModified,
		ActualProperties: map[string]any{
			"TableName": "orders",
		},
	}

	got, err := FromResource(resource, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TableName": "orders"}, got)
}

func TestFromResourceARNSpecialCase(t *testing.T) {
	// Nothing usable in context or properties, two keys required: only the
	// type-specific ARN rule can finish the job.
	resource := models.DriftedResource{
		LogicalID:    "App",
		ResourceType: "AWS::ECS::Service",
		PhysicalID:   "arn:aws:ecs:us-east-1:123:service/prod/web",
		DriftStatus:  models.DriftStatusModified,
	}

	got, err := FromResource(resource, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ServiceArn": "arn:aws:ecs:us-east-1:123:service/prod/web",
		"Cluster":    "prod",
	}, got)
}

func TestFromResourceUnresolvable(t *testing.T) {
	resource := models.DriftedResource{
		LogicalID:    "App",
		ResourceType: "AWS::ECS::Service",
		PhysicalID:   "svc",
		DriftStatus:  models.DriftStatusModified,
	}

	_, err := FromResource(resource, nil)
	require.Error(t, err)
	assert.True(t, IsUnresolvable(err))
	assert.Contains(t, err.Error(), "AWS::ECS::Service")
}

func TestRequiredKeysRegistry(t *testing.T) {
	keys, ok := RequiredKeys("AWS::S3::Bucket")
	require.True(t, ok)
	assert.Equal(t, []string{"BucketName"}, keys)

	_, ok = RequiredKeys("AWS::Custom::Widget")
	assert.False(t, ok)

	assert.True(t, IsImportable("AWS::SQS::Queue"))
	assert.False(t, IsImportable("AWS::CloudFormation::WaitConditionHandle"))
}
