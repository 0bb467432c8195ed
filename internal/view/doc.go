// Package view derives the display sequence from the full record set.
//
// Derive is a pure function: same records, same spec, same now, same output
// order. It is recomputed in full after every mutation; there is no
// incremental diffing. The output is always a permutation of the filtered
// subset - records are never duplicated or invented.
package view
