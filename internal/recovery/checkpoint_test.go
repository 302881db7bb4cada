package recovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftremediator/pkg/logging"
)

func TestFileStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, logging.NewMockLogger())

	checkpoint := Checkpoint{
		RunID:        "run-1234",
		StackName:    "app-stack",
		StackID:      "arn:aws:cloudformation:eu-west-1:123456789012:stack/app-stack/abc",
		TemplateBody: `{"Resources":{"Bucket":{"Type":"AWS::S3::Bucket"}}}`,
		Parameters:   map[string]string{"Env": "prod"},
		LogicalIDs:   []string{"Bucket"},
	}

	path, err := store.Save(checkpoint)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app-stack-run-1234-checkpoint.yaml"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.RunID, loaded.RunID)
	assert.Equal(t, checkpoint.StackName, loaded.StackName)
	assert.Equal(t, checkpoint.TemplateBody, loaded.TemplateBody)
	assert.Equal(t, checkpoint.Parameters, loaded.Parameters)
	assert.Equal(t, checkpoint.LogicalIDs, loaded.LogicalIDs)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "checkpoints")
	store := NewFileStore(dir, logging.NewMockLogger())

	path, err := store.Save(Checkpoint{RunID: "r", StackName: "s", TemplateBody: "{}"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
