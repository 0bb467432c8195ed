// Package selection implements the selection-mode state machine that governs
// multi-record bulk actions.
//
// The machine has three states: Inactive (no selection UI), ActiveEmpty
// (selection mode on, nothing selected) and ActiveNonEmpty. The one invariant
// that matters: the bulk-action bar is visible if and only if the state is
// ActiveNonEmpty. An earlier design showed the bar whenever selection mode
// was on, producing an empty ghost bar; BulkBarVisible encodes the corrected
// rule.
//
// Opening any modal dialog forcibly exits selection and clears the set, so a
// stale selection can never survive across overlapping UI surfaces.
package selection

// State identifies the current selection-machine state.
type State int

const (
	// Inactive means selection mode is off and the set is empty.
	Inactive State = iota
	// ActiveEmpty means selection mode is on with zero records selected.
	// The bulk-action bar stays hidden in this state.
	ActiveEmpty
	// ActiveNonEmpty means selection mode is on with at least one record
	// selected. Only here is the bulk-action bar visible.
	ActiveNonEmpty
)

// String returns the state name for logs and test failure messages.
func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ActiveEmpty:
		return "active-empty"
	case ActiveNonEmpty:
		return "active-nonempty"
	default:
		return "unknown"
	}
}

// Controller tracks selection mode and the set of selected record ids.
// Not safe for concurrent use; the UI drives it from a single thread.
type Controller struct {
	active   bool
	selected map[string]bool
}

// NewController creates a controller in the Inactive state.
func NewController() *Controller {
	return &Controller{selected: make(map[string]bool)}
}

// State recomputes the current state from the active flag and set size.
func (c *Controller) State() State {
	switch {
	case !c.active:
		return Inactive
	case len(c.selected) == 0:
		return ActiveEmpty
	default:
		return ActiveNonEmpty
	}
}

// BulkBarVisible reports whether the bulk-action bar should be shown.
// True exactly when the state is ActiveNonEmpty.
func (c *Controller) BulkBarVisible() bool {
	return c.State() == ActiveNonEmpty
}

// Enter turns selection mode on, optionally seeding the set with one id.
// A long-press on a grid item while Inactive is Enter(thatID).
func (c *Controller) Enter(seedID string) {
	c.active = true
	if seedID != "" {
		c.selected[seedID] = true
	}
}

// Toggle flips membership of id in the selected set.
// No-op while Inactive: there is nothing to toggle against.
func (c *Controller) Toggle(id string) {
	if !c.active {
		return
	}
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
}

// Exit leaves selection mode and clears the set unconditionally.
func (c *Controller) Exit() {
	c.active = false
	clear(c.selected)
}

// OnModalOpen handles any dialog opening: selection is forcibly exited.
func (c *Controller) OnModalOpen() {
	c.Exit()
}

// Prune drops selected ids that are no longer in the live record set.
// Called after every recompute so a record deleted elsewhere cannot linger
// in the selection.
func (c *Controller) Prune(liveIDs map[string]bool) {
	for id := range c.selected {
		if !liveIDs[id] {
			delete(c.selected, id)
		}
	}
}

// Selected returns the selected ids in unspecified order.
func (c *Controller) Selected() []string {
	out := make([]string, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	return out
}

// IsSelected reports whether id is in the selected set.
func (c *Controller) IsSelected(id string) bool {
	return c.selected[id]
}

// Count returns the number of selected ids.
func (c *Controller) Count() int {
	return len(c.selected)
}
