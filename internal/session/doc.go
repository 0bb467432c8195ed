// Package session ties the core together as an explicit context object: one
// Session owns the store handle, the selection controller, the display-handle
// cache and the undo slot, and exposes the mutation -> refetch -> derive
// cycle the UI drives.
//
// Every mutating operation is followed by Refresh, which re-fetches the full
// record set, derives the display sequence, prunes vanished ids from the
// selection and prunes display handles that left the display set. There is
// no push/subscribe contract; callers re-fetch.
//
// Bulk operations are sequences of independent single-record writes. A
// failure at item k leaves items 1..k-1 applied; the result carries applied
// and failed counts, not per-item detail. Deletes snapshot their victims as
// a transfer document first, so Undo can reinsert the whole batch within the
// undo window.
package session
