package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file, making parent directories as needed
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "folder1", "account1", "tfplan.out"))
	touch(t, filepath.Join(root, "folder2", "account2", "env", "prod", "tfplan.out"))
	touch(t, filepath.Join(root, "folder2", "account3", "other-file.txt"))

	targets, err := Discover(root, "tfplan.out")
	require.NoError(t, err)
	require.Len(t, targets, 2)

	sort.Slice(targets, func(i, j int) bool { return targets[i].Account < targets[j].Account })
	assert.Equal(t, "folder1/account1", targets[0].Account)
	assert.Equal(t, filepath.Join(root, "folder1", "account1", "tfplan.out"), targets[0].Path)
	assert.Equal(t, "folder2/account2", targets[1].Account)
	assert.NoError(t, targets[0].Err)
	assert.NoError(t, targets[1].Err)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	targets, err := Discover(t.TempDir(), "tfplan.out")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"), "tfplan.out")
	require.Error(t, err)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
}

func TestDiscover_IgnoresPlainFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "stray-file"))
	touch(t, filepath.Join(root, "folder1", "stray-file"))
	touch(t, filepath.Join(root, "folder1", "account1", "tfplan.out"))

	targets, err := Discover(root, "tfplan.out")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "folder1/account1", targets[0].Account)
}

func TestDiscover_MultipleArtifactsFlagsAccount(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "folder1", "account1", "tfplan.out"))
	touch(t, filepath.Join(root, "folder1", "account1", "old", "tfplan.out"))
	touch(t, filepath.Join(root, "folder1", "account2", "tfplan.out"))

	targets, err := Discover(root, "tfplan.out")
	require.NoError(t, err)
	require.Len(t, targets, 2)

	sort.Slice(targets, func(i, j int) bool { return targets[i].Account < targets[j].Account })
	assert.ErrorIs(t, targets[0].Err, ErrMultipleArtifacts)
	assert.NoError(t, targets[1].Err)
}

func TestDiscover_CustomFilename(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "folder1", "account1", "plan.tfplan"))
	touch(t, filepath.Join(root, "folder1", "account1", "tfplan.out"))

	targets, err := Discover(root, "plan.tfplan")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, filepath.Join(root, "folder1", "account1", "plan.tfplan"), targets[0].Path)
}
