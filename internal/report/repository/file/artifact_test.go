package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportctl/internal/report/repository"
	"reportctl/pkg/log"
)

func TestSaveWritesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	repo := New(dir, log.NewNop())

	path, err := repo.Save(context.Background(), repository.SaveOptions{
		ReportID: "abc",
		Name:     "CodeAnalysis_app_abc.pdf",
		Data:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "CodeAnalysis_app_abc.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestSaveStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	path, err := New(dir, log.NewNop()).Save(context.Background(), repository.SaveOptions{
		Name: "../escape.pdf",
		Data: []byte("x"),
	})
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(abs, "escape.pdf"), path)
}
