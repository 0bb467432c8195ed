package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFavoritesFilter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Everyday jeans")
	mustAdd(t, db, "--name", "Silk dress", "--favorite")

	out, err := execute(t, db, "list", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "Silk dress")
	assert.NotContains(t, out, "Everyday jeans")
	assert.Contains(t, out, "Showing 1 of 2")
}

func TestListSearchMatchesName(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Navy blazer")
	mustAdd(t, db, "--name", "Summer dress")

	out, err := execute(t, db, "list", "--search", "blazer")
	require.NoError(t, err)
	assert.Contains(t, out, "Navy blazer")
	assert.NotContains(t, out, "Summer dress")
}

func TestListSortByName(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Wool coat")
	mustAdd(t, db, "--name", "Apron dress")

	out, err := execute(t, db, "list", "--sort", "name-asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Apron dress"), strings.Index(out, "Wool coat"))
}

func TestListTagFilter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Office shirt", "--tags", "work")
	mustAdd(t, db, "--name", "Beach shorts", "--tags", "summer")

	out, err := execute(t, db, "list", "--tag", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Office shirt")
	assert.NotContains(t, out, "Beach shorts")
}

func TestListMinRating(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Meh hoodie", "--rating", "2")
	mustAdd(t, db, "--name", "Great suit", "--rating", "5")

	out, err := execute(t, db, "list", "--min-rating", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Great suit")
	assert.NotContains(t, out, "Meh hoodie")
}

func TestListEmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")

	out, err := execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No outfits yet")
}

func TestListJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wardrobe.db")
	mustAdd(t, db, "--name", "Denim jacket")
	mustAdd(t, db, "--name", "Rain coat", "--favorite")

	out, err := execute(t, db, "list", "--favorites", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["shown"])
	assert.Equal(t, float64(2), data["total"])
}
