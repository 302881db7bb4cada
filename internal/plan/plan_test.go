package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftremediator/internal/models"
)

func sampleResource(id string, status models.DriftStatus) models.DriftedResource {
	return models.DriftedResource{
		LogicalID:    id,
		ResourceType: "AWS::S3::Bucket",
		PhysicalID:   id + "-physical",
		DriftStatus:  status,
	}
}

func sampleDecisions() models.InteractiveDecisions {
	return models.InteractiveDecisions{
		Autofix: []models.DriftedResource{sampleResource("Bucket", models.DriftStatusModified)},
		Reimport: []models.ReimportDecision{{
			Resource:         sampleResource("Queue", models.DriftStatusDeleted),
			ImportIdentifier: "https://sqs.us-east-1.amazonaws.com/123/q",
		}},
		Remove: []models.DriftedResource{sampleResource("Topic", models.DriftStatusDeleted)},
		Skip:   []models.DriftedResource{sampleResource("Table", models.DriftStatusModified)},
	}
}

func TestBuildStableOrder(t *testing.T) {
	p := Build(Metadata{StackName: "prod"}, sampleDecisions())

	require.Len(t, p.Decisions, 4)
	assert.Equal(t, Version, p.Version)

	actions := make([]string, len(p.Decisions))
	ids := make([]string, len(p.Decisions))
	for i, d := range p.Decisions {
		actions[i] = d.Action
		ids[i] = d.LogicalID
	}
	assert.Equal(t, []string{ActionAutofix, ActionReimport, ActionRemove, ActionSkip}, actions)
	assert.Equal(t, []string{"Bucket", "Queue", "Topic", "Table"}, ids)

	require.Len(t, p.Resources, 4)
	assert.Equal(t, "https://sqs.us-east-1.amazonaws.com/123/q", p.Decisions[1].ImportIdentifier)
}

// TestRoundTrip verifies that serializing a built plan, loading it back and
// expanding it reproduces the original four buckets exactly.
func TestRoundTrip(t *testing.T) {
	original := sampleDecisions()
	p := Build(Metadata{StackName: "prod", StackID: "stack-id", Region: "us-east-1"}, original)

	data, err := Serialize(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")

	loaded, err := Load(data, "prod")
	require.NoError(t, err)

	expanded, err := ToDecisions(loaded)
	require.NoError(t, err)
	assert.Equal(t, original, expanded)
}

func TestToDecisionsDanglingReference(t *testing.T) {
	p := Build(Metadata{StackName: "prod"}, sampleDecisions())
	delete(p.Resources, "Queue")

	_, err := ToDecisions(p)
	require.Error(t, err)
	assert.True(t, IsErrorCategory(err, ErrDanglingReference))
	assert.Contains(t, err.Error(), "Queue")
}

func TestToDecisionsImplicitSkip(t *testing.T) {
	p := Build(Metadata{StackName: "prod"}, sampleDecisions())
	// A snapshot entry nobody decided on is implicitly skipped.
	p.Resources["Orphan"] = sampleResource("Orphan", models.DriftStatusModified)

	expanded, err := ToDecisions(p)
	require.NoError(t, err)

	skipped := make([]string, len(expanded.Skip))
	for i, r := range expanded.Skip {
		skipped[i] = r.LogicalID
	}
	assert.Contains(t, skipped, "Orphan")
	assert.Contains(t, skipped, "Table")
}

// dropLineContaining removes every line holding the substring, indentation
// included, keeping the document parsable.
func dropLineContaining(substr string) func(string) string {
	return func(s string) string {
		lines := strings.Split(s, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if strings.Contains(line, substr) {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
}

func TestLoadValidation(t *testing.T) {
	valid := func() string {
		p := Build(Metadata{StackName: "prod"}, sampleDecisions())
		data, err := Serialize(p)
		require.NoError(t, err)
		return string(data)
	}()

	tests := []struct {
		name          string
		mutate        func(string) string
		expectedStack string
		wantInError   []string
	}{
		{
			name:        "unparsable text",
			mutate:      func(string) string { return "{{ not yaml" },
			wantInError: []string{"not parsable"},
		},
		{
			name:        "unsupported version names the value",
			mutate:      func(s string) string { return strings.Replace(s, "version: 1", "version: 99", 1) },
			wantInError: []string{"99"},
		},
		{
			name:        "missing version",
			mutate:      func(s string) string { return strings.Replace(s, "version: 1\n", "", 1) },
			wantInError: []string{"version"},
		},
		{
			name:          "stack mismatch names both stacks",
			mutate:        func(s string) string { return s },
			expectedStack: "staging",
			wantInError:   []string{"prod", "staging"},
		},
		{
			name:        "decisions not a list",
			mutate:      func(s string) string { return strings.Replace(s, "decisions:\n", "decisions: nope\nignored:\n", 1) },
			wantInError: []string{"decisions"},
		},
		{
			name:        "unknown action names value and id",
			mutate:      func(s string) string { return strings.Replace(s, "action: remove", "action: obliterate", 1) },
			wantInError: []string{"obliterate", "Topic"},
		},
		{
			name:        "reimport without identifier names the id",
			mutate:      dropLineContaining("importIdentifier"),
			wantInError: []string{"Queue", "importIdentifier"},
		},
		{
			name:        "missing snapshot map",
			mutate:      func(s string) string { return s[:strings.Index(s, "_resources:")] },
			wantInError: []string{"snapshot"},
		},
		{
			name:        "missing stack metadata",
			mutate:      func(s string) string { return strings.Replace(s, "stackName: prod", "region: us-east-1", 1) },
			wantInError: []string{"stack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := tt.expectedStack
			if expected == "" {
				expected = "prod"
			}
			_, err := Load([]byte(tt.mutate(valid)), expected)
			require.Error(t, err)
			assert.True(t, IsErrorCategory(err, ErrInvalidPlan), "expected invalid_plan, got %v", err)
			for _, fragment := range tt.wantInError {
				assert.Contains(t, err.Error(), fragment)
			}
		})
	}
}

func TestLoadDecisionMissingLogicalID(t *testing.T) {
	text := `
version: 1
metadata:
  stackName: prod
decisions:
  - action: skip
_resources: {}
`
	_, err := Load([]byte(text), "prod")
	require.Error(t, err)
	assert.True(t, IsErrorCategory(err, ErrInvalidPlan))
	assert.Contains(t, err.Error(), "logicalId")
}
