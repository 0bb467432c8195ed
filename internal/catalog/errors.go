package catalog

import "errors"

// Sentinel errors shared across the store and its callers.
// Check with errors.Is; store errors wrap these with operation context.
var (
	// ErrNotFound indicates a get/put/delete against an id that is not in
	// the store. Callers typically treat it as "the record vanished" and
	// stop the dependent flow.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID indicates an Add with an id that already exists.
	// Should not occur with generated ids; fatal to the operation when it does.
	ErrDuplicateID = errors.New("duplicate record id")
)
