// Package transfer serializes record sets to the portable export document
// and back. The document embeds each image as a base64 data URI so a single
// JSON file is self-contained.
//
// Import is deliberately asymmetric in strictness: the top-level shape is
// validated against an embedded CUE schema (a document whose "outfits" field
// is not a list fails outright with FormatError, nothing applied), while
// individual entries are decoded leniently - bad scalar or array fields fall
// back to defaults, and only entries without usable image data are skipped.
//
// The same documents back the undo slot: a bulk delete snapshots its victims
// as a document, and undo is an import of that snapshot.
package transfer
