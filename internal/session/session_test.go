package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/internal/catalog"
	"wardrobe/internal/imaging"
	"wardrobe/internal/selection"
	"wardrobe/internal/store"
	"wardrobe/internal/testutil"
	"wardrobe/internal/transfer"
	"wardrobe/internal/view"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func newTestSession(t *testing.T) (*Session, *store.Store, *testutil.FixedClock) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "wardrobe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := testutil.NewFixedClock(t0)
	s := New(st, Options{
		Clock:     clock,
		HandleDir: t.TempDir(),
	})
	t.Cleanup(s.Close)

	return s, st, clock
}

// pngBytes builds a decodable source image for creation flows.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 30, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func seed(t *testing.T, st *store.Store, n int) []catalog.Outfit {
	t.Helper()
	var out []catalog.Outfit
	for i := 0; i < n; i++ {
		o := testutil.Outfit()
		require.NoError(t, st.Add(context.Background(), o))
		out = append(out, o)
	}
	return out
}

func TestCreate_NormalizesFields(t *testing.T) {
	// Blank name and out-of-range rating are normalized at creation.
	s, st, _ := newTestSession(t)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateInput{
		Name:   "",
		Rating: 7,
		Image:  pngBytes(t, 50, 50),
	})
	require.NoError(t, err)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.PlaceholderName, got.Name)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, catalog.Millis(t0), got.CreatedAt)
}

func TestCreate_UndecodableImageWritesNothing(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.Create(ctx, CreateInput{Name: "x", Image: []byte("garbage")})
	require.Error(t, err)

	var decodeErr *imaging.DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no record persisted on decode failure")
}

func TestCreate_BoundsImage(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wardrobe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(st, Options{
		Clock:     testutil.NewFixedClock(t0),
		Image:     imaging.Options{MaxSide: 64},
		HandleDir: t.TempDir(),
	})
	t.Cleanup(s.Close)

	created, err := s.Create(context.Background(), CreateInput{Name: "big", Image: pngBytes(t, 500, 250)})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(created.Image))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 64)
	assert.LessOrEqual(t, cfg.Height, 64)
}

func TestSave_UpdatesFields(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	orig := seed(t, st, 1)[0]

	saved, err := s.Save(ctx, orig.ID, SaveInput{
		Name:    "Renamed",
		Rating:  3.6,
		TagText: "Linen, SUMMER",
		Notes:   "light",
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", saved.Name)
	assert.Equal(t, 4, saved.Rating)
	assert.Equal(t, []string{"linen", "summer"}, saved.Tags)
	assert.Equal(t, orig.CreatedAt, saved.CreatedAt, "creation time is immutable")
	assert.Equal(t, orig.Image, saved.Image, "image is immutable")
}

func TestSave_VanishedRecordAborts(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Save(context.Background(), "gone", SaveInput{Name: "x"})
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestWearToday(t *testing.T) {
	s, st, clock := newTestSession(t)
	ctx := context.Background()
	orig := seed(t, st, 1)[0]

	clock.Advance(time.Hour)
	worn, err := s.WearToday(ctx, orig.ID)
	require.NoError(t, err)

	assert.Equal(t, orig.WearCount+1, worn.WearCount)
	assert.Equal(t, catalog.Millis(t0.Add(time.Hour)), worn.LastWornAt)

	// Monotonic: wearing again only moves forward.
	clock.Advance(time.Hour)
	again, err := s.WearToday(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, worn.WearCount+1, again.WearCount)
	assert.Greater(t, again.LastWornAt, worn.LastWornAt)
}

func TestBulkDelete_ThenUndoRestoresAll(t *testing.T) {
	// Scenario: bulk-delete 3 of 5 records, undo, all 5 back with
	// original field values.
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 5)

	victims := []string{records[0].ID, records[2].ID, records[4].ID}
	res := s.BulkDelete(ctx, victims)
	assert.Equal(t, 3, res.Applied)
	assert.Zero(t, res.Failed)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	restored, err := s.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, restored)

	for _, orig := range records {
		got, err := st.Get(ctx, orig.ID)
		require.NoError(t, err, "record %s missing after undo", orig.ID)
		assert.Equal(t, orig.Name, got.Name)
		assert.Equal(t, orig.Rating, got.Rating)
		assert.Equal(t, orig.CreatedAt, got.CreatedAt)
		assert.Equal(t, orig.Image, got.Image)
	}
}

func TestBulkDelete_BestEffort(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 2)

	res := s.BulkDelete(ctx, []string{records[0].ID, "no-such-id", records[1].ID})
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.Failed)
}

func TestBulkDelete_ExitsSelection(t *testing.T) {
	s, st, _ := newTestSession(t)
	records := seed(t, st, 1)

	s.Selection().Enter(records[0].ID)
	s.BulkDelete(context.Background(), []string{records[0].ID})

	assert.Equal(t, selection.Inactive, s.Selection().State())
}

func TestUndo_EmptySlot(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Undo(context.Background())
	assert.True(t, errors.Is(err, ErrNothingToUndo))
}

func TestUndo_Expires(t *testing.T) {
	s, st, clock := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 1)

	require.NoError(t, s.Delete(ctx, records[0].ID))

	clock.Advance(DefaultUndoWindow + time.Second)
	_, err := s.Undo(ctx)
	assert.True(t, errors.Is(err, ErrNothingToUndo))
}

func TestUndo_SingleUse(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 1)

	require.NoError(t, s.Delete(ctx, records[0].ID))

	_, err := s.Undo(ctx)
	require.NoError(t, err)

	_, err = s.Undo(ctx)
	assert.True(t, errors.Is(err, ErrNothingToUndo))
}

func TestBulkFavorite(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 3)

	res := s.BulkFavorite(ctx, []string{records[0].ID, records[1].ID, "missing"}, true)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.Failed)

	got, err := st.Get(ctx, records[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
}

func TestRefresh_DerivesAndPrunes(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()

	fav := testutil.Outfit(testutil.WithFavorite())
	plain := testutil.Outfit()
	require.NoError(t, st.Add(ctx, fav))
	require.NoError(t, st.Add(ctx, plain))

	v, err := s.Refresh(ctx, view.Spec{Filter: view.Filter{FavoriteOnly: true}})
	require.NoError(t, err)
	require.Len(t, v.Sequence, 1)
	assert.Equal(t, fav.ID, v.Sequence[0].ID)
	assert.Equal(t, 2, v.Total)
}

func TestRefresh_PrunesVanishedSelection(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 2)

	s.Selection().Enter(records[0].ID)
	s.Selection().Toggle(records[1].ID)

	// Another surface deletes one record; the next recompute drops it
	// from the selection.
	require.NoError(t, st.Delete(ctx, records[1].ID))

	v, err := s.Refresh(ctx, view.Spec{})
	require.NoError(t, err)
	assert.False(t, s.Selection().IsSelected(records[1].ID))
	assert.True(t, s.Selection().IsSelected(records[0].ID))
	assert.True(t, v.BulkBarVisible)
}

func TestRefresh_PrunesHandles(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()

	fav := testutil.Outfit(testutil.WithFavorite())
	plain := testutil.Outfit()
	require.NoError(t, st.Add(ctx, fav))
	require.NoError(t, st.Add(ctx, plain))

	_, err := s.Handle(fav)
	require.NoError(t, err)
	_, err = s.Handle(plain)
	require.NoError(t, err)
	assert.Equal(t, 2, s.handles.Len())

	// Narrowing the display set revokes the off-screen handle.
	_, err = s.Refresh(ctx, view.Spec{Filter: view.Filter{FavoriteOnly: true}})
	require.NoError(t, err)
	assert.Equal(t, 1, s.handles.Len())
}

func TestOnModalOpen_ResetsSelection(t *testing.T) {
	// Scenario: select record A, open the detail dialog.
	s, st, _ := newTestSession(t)
	records := seed(t, st, 1)

	s.Selection().Enter(records[0].ID)
	require.Equal(t, selection.ActiveNonEmpty, s.Selection().State())

	s.OnModalOpen()
	assert.Equal(t, selection.Inactive, s.Selection().State())
	assert.Zero(t, s.Selection().Count())
}

func TestImport_MalformedDocumentAppliesNothing(t *testing.T) {
	// Scenario: outfits field is the string "oops".
	s, st, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.Import(ctx, []byte(`{"version":1,"outfits":"oops"}`))
	require.Error(t, err)

	var formatErr *transfer.FormatError
	assert.ErrorAs(t, err, &formatErr)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImport_RoundTripIntoEmptyStore(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := []catalog.Outfit{
		testutil.Outfit(testutil.WithName("One"), testutil.WithTags("a")),
		testutil.Outfit(testutil.WithName("Two"), testutil.WithTags("b")),
	}
	for _, o := range records {
		require.NoError(t, st.Add(ctx, o))
	}

	doc, err := s.Export(ctx)
	require.NoError(t, err)

	// Fresh destination store.
	st2, err := store.Open(filepath.Join(t.TempDir(), "dest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st2.Close() })
	s2 := New(st2, Options{Clock: testutil.NewFixedClock(t0), HandleDir: t.TempDir()})
	t.Cleanup(s2.Close)

	res, err := s2.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Zero(t, res.Skipped)

	// Ids never collided, so they are preserved.
	for _, orig := range records {
		got, err := st2.Get(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, orig.Name, got.Name)
	}
}

func TestImport_MintsIDWhenOccupied(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	seed(t, st, 1)

	doc, err := transfer.Encode([]catalog.Outfit{
		testutil.Outfit(testutil.WithName("Clone")),
	}, t0)
	require.NoError(t, err)

	// Importing the same document twice: the first pass reuses the free
	// entry id, the second finds it occupied.
	res, err := s.Import(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.Added)

	res, err = s.Import(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.Added, "second import mints a fresh id instead of clobbering")

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestExportSelected(t *testing.T) {
	s, st, _ := newTestSession(t)
	ctx := context.Background()
	records := seed(t, st, 3)

	s.Selection().Enter(records[1].ID)

	doc, err := s.ExportSelected(ctx)
	require.NoError(t, err)

	got, _, err := transfer.Decode(doc, t0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, records[1].ID, got[0].ID)
}
