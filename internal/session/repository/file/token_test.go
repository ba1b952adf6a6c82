package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportctl/pkg/log"
)

func TestTokenFileLifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")
	repo := New(path, log.NewNop())

	tok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, repo.Save(ctx, "abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	tok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, repo.Save(ctx, "second"))
	tok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))
	tok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestLoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok\n"), filePerm))

	tok, err := New(path, log.NewNop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}
