package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"wardrobe/internal/catalog"
	"wardrobe/internal/imaging"
	"wardrobe/internal/logging"
	"wardrobe/internal/selection"
	"wardrobe/internal/store"
	"wardrobe/internal/transfer"
	"wardrobe/internal/view"
)

// DefaultUndoWindow bounds how long a delete can be undone.
const DefaultUndoWindow = 30 * time.Second

// ErrNothingToUndo indicates an empty or expired undo slot.
var ErrNothingToUndo = errors.New("nothing to undo")

// Options configures a Session. Zero values get defaults.
type Options struct {
	Clock      catalog.Clock
	Logger     logging.Logger
	Image      imaging.Options
	UndoWindow time.Duration
	HandleDir  string
}

// Session is the explicit per-UI-session context object. Not safe for
// concurrent use: the UI issues one logical operation at a time.
type Session struct {
	store      *store.Store
	clock      catalog.Clock
	log        logging.Logger
	sel        *selection.Controller
	handles    *HandleCache
	img        imaging.Options
	undoWindow time.Duration

	// Single undo slot: the last delete's victims as a transfer document.
	undoDoc []byte
	undoAt  time.Time
}

// New creates a session over an opened store.
func New(st *store.Store, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = catalog.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.UndoWindow <= 0 {
		opts.UndoWindow = DefaultUndoWindow
	}
	if opts.HandleDir == "" {
		opts.HandleDir = os.TempDir()
	}

	return &Session{
		store:      st,
		clock:      opts.Clock,
		log:        opts.Logger,
		sel:        selection.NewController(),
		handles:    NewHandleCache(opts.HandleDir),
		img:        opts.Image,
		undoWindow: opts.UndoWindow,
	}
}

// Selection exposes the selection controller for the UI layer.
func (s *Session) Selection() *selection.Controller {
	return s.sel
}

// Handle returns the display handle for an outfit.
func (s *Session) Handle(o catalog.Outfit) (string, error) {
	return s.handles.Acquire(o.ID, o.Image)
}

// Close releases the session's ephemeral resources. The store stays open;
// its lifetime belongs to the caller.
func (s *Session) Close() {
	s.handles.Clear()
}

// View is the result of one refresh cycle.
type View struct {
	// Sequence is the derived display sequence.
	Sequence []catalog.Outfit
	// Total is the full record count before filtering.
	Total int
	// BulkBarVisible mirrors the selection invariant after pruning.
	BulkBarVisible bool
}

// Refresh re-fetches the full record set and recomputes the derived state:
// display sequence, pruned selection, pruned handle cache.
func (s *Session) Refresh(ctx context.Context, spec view.Spec) (View, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("refresh: %w", err)
	}

	seq := view.Derive(records, spec, s.clock.Now())

	live := make(map[string]bool, len(records))
	for _, o := range records {
		live[o.ID] = true
	}
	s.sel.Prune(live)

	displayed := make(map[string]bool, len(seq))
	for _, o := range seq {
		displayed[o.ID] = true
	}
	s.handles.Prune(displayed)

	return View{
		Sequence:       seq,
		Total:          len(records),
		BulkBarVisible: s.sel.BulkBarVisible(),
	}, nil
}

// OnModalOpen must be called whenever any dialog opens: selection is
// forcibly exited so no stale selection survives an overlapping surface.
func (s *Session) OnModalOpen() {
	s.sel.OnModalOpen()
}

// CreateInput carries the user-entered fields for a new record.
type CreateInput struct {
	Name     string
	Rating   float64
	Favorite bool
	TagText  string
	Notes    string
	Image    []byte
}

// Create normalizes the image and persists a new record.
// A DecodeError aborts creation; nothing is written.
func (s *Session) Create(ctx context.Context, in CreateInput) (catalog.Outfit, error) {
	normalized, err := imaging.Normalize(in.Image, s.img)
	if err != nil {
		return catalog.Outfit{}, fmt.Errorf("create outfit: %w", err)
	}

	o := catalog.Outfit{
		ID:        catalog.NewID(),
		Name:      catalog.NormalizeName(in.Name),
		Rating:    catalog.ClampRating(in.Rating),
		Favorite:  in.Favorite,
		Tags:      catalog.ParseTags(in.TagText),
		Notes:     in.Notes,
		CreatedAt: catalog.Millis(s.clock.Now()),
		Image:     normalized,
	}

	if err := s.store.Add(ctx, o); err != nil {
		return catalog.Outfit{}, fmt.Errorf("create outfit: %w", err)
	}

	s.log.Info("outfit created", "id", o.ID, "name", o.Name)
	return o, nil
}

// SaveInput carries the editable fields of a detail-save.
// Image and creation time are immutable; wear statistics change only
// through WearToday.
type SaveInput struct {
	Name     string
	Rating   float64
	Favorite bool
	TagText  string
	Notes    string
}

// Save applies a detail-save to an existing record.
// If the record vanished underneath the dialog the save aborts with
// catalog.ErrNotFound and nothing is written.
func (s *Session) Save(ctx context.Context, id string, in SaveInput) (catalog.Outfit, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return catalog.Outfit{}, fmt.Errorf("save outfit: %w", err)
	}

	cur.Name = catalog.NormalizeName(in.Name)
	cur.Rating = catalog.ClampRating(in.Rating)
	cur.Favorite = in.Favorite
	cur.Tags = catalog.ParseTags(in.TagText)
	cur.Notes = in.Notes

	if err := s.store.Put(ctx, cur); err != nil {
		return catalog.Outfit{}, fmt.Errorf("save outfit: %w", err)
	}
	return cur, nil
}

// WearToday bumps the wear count and stamps the last-worn time.
func (s *Session) WearToday(ctx context.Context, id string) (catalog.Outfit, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return catalog.Outfit{}, fmt.Errorf("wear today: %w", err)
	}

	cur.WearCount++
	cur.LastWornAt = catalog.Millis(s.clock.Now())

	if err := s.store.Put(ctx, cur); err != nil {
		return catalog.Outfit{}, fmt.Errorf("wear today: %w", err)
	}
	return cur, nil
}

// SetFavorite sets the favorite flag on one record.
func (s *Session) SetFavorite(ctx context.Context, id string, favorite bool) error {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}

	cur.Favorite = favorite
	if err := s.store.Put(ctx, cur); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// Delete removes one record, snapshotting it into the undo slot first.
func (s *Session) Delete(ctx context.Context, id string) error {
	res := s.deleteMany(ctx, []string{id})
	if res.Failed > 0 {
		return fmt.Errorf("delete outfit %s: %w", id, catalog.ErrNotFound)
	}
	return nil
}

// BulkResult summarizes a best-effort bulk operation.
type BulkResult struct {
	Applied int
	Failed  int
}

// BulkDelete removes the given records best-effort. Victims that still
// exist are snapshotted into the undo slot before any delete is issued, so
// a later Undo restores the whole batch. Selection mode exits afterwards.
func (s *Session) BulkDelete(ctx context.Context, ids []string) BulkResult {
	res := s.deleteMany(ctx, ids)
	s.sel.Exit()
	return res
}

func (s *Session) deleteMany(ctx context.Context, ids []string) BulkResult {
	var res BulkResult

	// Snapshot first: only records that actually exist can be restored.
	victims := make([]catalog.Outfit, 0, len(ids))
	for _, id := range ids {
		o, err := s.store.Get(ctx, id)
		if err != nil {
			continue
		}
		victims = append(victims, o)
	}
	if len(victims) > 0 {
		doc, err := transfer.Encode(victims, s.clock.Now())
		if err != nil {
			s.log.Error("undo snapshot failed", "error", err)
		} else {
			s.undoDoc = doc
			s.undoAt = s.clock.Now()
		}
	}

	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			res.Failed++
			s.log.Warn("delete failed", "id", id, "error", err)
			continue
		}
		s.handles.Revoke(id)
		res.Applied++
	}

	s.log.Info("delete applied", "applied", res.Applied, "failed", res.Failed)
	return res
}

// BulkFavorite sets the favorite flag on the given records best-effort.
func (s *Session) BulkFavorite(ctx context.Context, ids []string, favorite bool) BulkResult {
	var res BulkResult
	for _, id := range ids {
		if err := s.SetFavorite(ctx, id, favorite); err != nil {
			res.Failed++
			continue
		}
		res.Applied++
	}
	return res
}

// Undo reinserts the last delete's victims. Valid once, within the undo
// window; otherwise ErrNothingToUndo.
func (s *Session) Undo(ctx context.Context) (int, error) {
	if s.undoDoc == nil {
		return 0, ErrNothingToUndo
	}
	if s.clock.Now().Sub(s.undoAt) > s.undoWindow {
		s.undoDoc = nil
		return 0, ErrNothingToUndo
	}

	records, _, err := transfer.Decode(s.undoDoc, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("undo: %w", err)
	}

	restored := 0
	for _, o := range records {
		if err := s.store.Add(ctx, o); err != nil {
			// Already reinserted elsewhere; leave it be.
			if errors.Is(err, catalog.ErrDuplicateID) {
				continue
			}
			return restored, fmt.Errorf("undo: %w", err)
		}
		restored++
	}

	s.undoDoc = nil
	s.log.Info("undo applied", "restored", restored)
	return restored, nil
}

// UndoSnapshot returns the pending undo document and its capture time.
// Callers that outlive the session (one-shot CLI invocations) persist it
// themselves and feed it back through Import.
func (s *Session) UndoSnapshot() ([]byte, time.Time, bool) {
	if s.undoDoc == nil {
		return nil, time.Time{}, false
	}
	return s.undoDoc, s.undoAt, true
}

// Export serializes the full record set to a transfer document.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return transfer.Encode(records, s.clock.Now())
}

// ExportSelected serializes only the currently selected records.
func (s *Session) ExportSelected(ctx context.Context) ([]byte, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export selected: %w", err)
	}

	picked := make([]catalog.Outfit, 0, s.sel.Count())
	for _, o := range records {
		if s.sel.IsSelected(o.ID) {
			picked = append(picked, o)
		}
	}
	return transfer.Encode(picked, s.clock.Now())
}

// ImportResult summarizes an applied import.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import applies a transfer document to the store. A malformed document
// aborts with *transfer.FormatError and zero records applied. Entry ids are
// reused when free and minted fresh when occupied, so re-importing an old
// export does not clobber unrelated records.
func (s *Session) Import(ctx context.Context, data []byte) (ImportResult, error) {
	records, skipped, err := transfer.Decode(data, s.clock.Now())
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}

	res := ImportResult{Skipped: skipped}
	for _, o := range records {
		if o.ID == "" || s.idOccupied(ctx, o.ID) {
			o.ID = catalog.NewID()
		}
		if err := s.store.Add(ctx, o); err != nil {
			if errors.Is(err, catalog.ErrDuplicateID) {
				// Lost a race with our own check; mint and retry once.
				o.ID = catalog.NewID()
				if err := s.store.Add(ctx, o); err != nil {
					res.Skipped++
					continue
				}
			} else {
				return res, fmt.Errorf("import: %w", err)
			}
		}
		res.Added++
	}

	s.log.Info("import applied", "added", res.Added, "skipped", res.Skipped)
	return res, nil
}

func (s *Session) idOccupied(ctx context.Context, id string) bool {
	_, err := s.store.Get(ctx, id)
	return err == nil
}
