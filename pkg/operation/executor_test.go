package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfandrich/renuniq/pkg/operation"
	"github.com/dfandrich/renuniq/pkg/plan"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestApply_RenamesFiles(t *testing.T) {
	dir := t.TempDir()
	srcA := filepath.Join(dir, "a.txt")
	srcB := filepath.Join(dir, "b.txt")
	writeFile(t, srcA, "alpha")
	writeFile(t, srcB, "beta")

	p := &plan.Plan{
		Pairs: []plan.Pair{
			{Source: plan.FileEntry{Path: srcA}, Destination: filepath.Join(dir, "x.txt")},
			{Source: plan.FileEntry{Path: srcB}, Destination: filepath.Join(dir, "y.txt")},
		},
		Valid: true,
	}

	ex := &operation.Executor{}
	require.NoError(t, ex.Apply(context.Background(), p))

	assert.NoFileExists(t, srcA)
	assert.NoFileExists(t, srcB)

	got, err := os.ReadFile(filepath.Join(dir, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))
	assert.FileExists(t, filepath.Join(dir, "y.txt"))
}

func TestApply_SkipsNoOpPairs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "same.txt")
	writeFile(t, src, "content")

	p := &plan.Plan{
		Pairs: []plan.Pair{
			{Source: plan.FileEntry{Path: src}, Destination: src, NoOp: true},
		},
		Valid: true,
	}

	ex := &operation.Executor{}
	require.NoError(t, ex.Apply(context.Background(), p))
	assert.FileExists(t, src)
}

func TestApply_DryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "alpha")

	p := &plan.Plan{
		Pairs: []plan.Pair{
			{Source: plan.FileEntry{Path: src}, Destination: filepath.Join(dir, "x.txt")},
		},
		Valid: true,
	}

	ex := &operation.Executor{DryRun: true}
	require.NoError(t, ex.Apply(context.Background(), p))

	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(dir, "x.txt"))
}

func TestApply_RefusesInvalidPlan(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "alpha")

	p := &plan.Plan{
		Pairs: []plan.Pair{
			{Source: plan.FileEntry{Path: src}, Destination: filepath.Join(dir, "x.txt")},
		},
		Conflicts: []plan.Conflict{
			{Kind: plan.ConflictDuplicate, Destination: "x.txt", Sources: []string{"a.txt", "b.txt"}},
		},
		Valid: false,
	}

	ex := &operation.Executor{}
	err := ex.Apply(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to apply invalid plan")

	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(dir, "x.txt"))
}
