// Package catalog defines the outfit record, the only durable entity in the
// system, together with the field-normalization rules that hold at every
// write boundary:
//
//   - a blank name becomes the fixed placeholder
//   - ratings are rounded and clamped into [0,5]
//   - tags are trimmed, lowercased, de-duplicated and capped at 30 entries
//   - notes are trimmed
//
// The package also carries the shared error sentinels and the Clock
// abstraction used wherever "now" matters (staleness filtering, wear
// tracking, undo expiry), so tests can pin time.
package catalog
