package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")

	run, err := Open(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, run.Folder)
	assert.Equal(t, 0, run.Start)
	assert.Equal(t, 0, run.Files)
	assert.DirExists(t, dir)
}

func TestOpenResumes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000.jpeg", "001.jpeg", "002.jpeg")

	run, err := Open(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Start)
	assert.Equal(t, 3, run.Files)
}

func TestOpenMalformed(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "cover.jpeg")

	_, err := Open(context.Background(), dir)
	assert.True(t, IsMalformedStateError(err))
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	run, err := Open(ctx, t.TempDir())
	require.NoError(t, err)

	require.NoError(t, run.Save(ctx, 0, []byte("seed")))
	assert.FileExists(t, filepath.Join(run.Folder, "000.jpeg"))

	data, err := run.Load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("seed"), data)

	_, err = run.Load(ctx, 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	run, err := Open(ctx, t.TempDir())
	require.NoError(t, err)

	require.NoError(t, run.Save(ctx, 4, []byte("first")))
	err = run.Save(ctx, 4, []byte("second"))
	assert.ErrorIs(t, err, os.ErrExist)

	data, err := run.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}
