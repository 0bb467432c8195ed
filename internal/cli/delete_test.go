package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteThenUndoRestores(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Keeper")
	b := mustAdd(t, db, "--name", "Goner")

	out, err := execute(t, db, "delete", b)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 outfit(s)")

	listOut, err := execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "Keeper")
	assert.NotContains(t, listOut, "Goner")

	out, err = execute(t, db, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 1 outfit(s)")

	listOut, err = execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "Goner")
	assert.Contains(t, listOut, "Showing 2 of 2")
}

func TestDeleteSeveral(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	a := mustAdd(t, db)
	b := mustAdd(t, db)
	c := mustAdd(t, db)

	out, err := execute(t, db, "delete", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 outfit(s)")

	listOut, err := execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, c)
	assert.Contains(t, listOut, "Showing 1 of 1")
}

func TestDeleteUnknownIDFails(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	id := mustAdd(t, db)

	out, err := execute(t, db, "delete", id, "no-such-id")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Deleted 1 outfit(s), 1 failed")
}

func TestUndoWithNothingPending(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db)

	out, err := execute(t, db, "undo")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "nothing to undo")
}

func TestUndoIsSingleUse(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	id := mustAdd(t, db)

	_, err := execute(t, db, "delete", id)
	require.NoError(t, err)

	_, err = execute(t, db, "undo")
	require.NoError(t, err)

	out, err := execute(t, db, "undo")
	require.Error(t, err)
	assert.Contains(t, out, "nothing to undo")
}
