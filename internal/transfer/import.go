package transfer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"wardrobe/internal/catalog"
)

//go:embed document.cue
var documentSchema string

// Decode parses document JSON into outfit records.
//
// The top-level shape is validated against the embedded CUE schema; any
// violation aborts the whole import with *FormatError. Entries are then
// decoded one by one: entries without usable image data are skipped (counted
// in skipped), and missing or mistyped scalar/array fields default rather
// than failing the entry.
//
// Returned ids are whatever the entries carried, possibly empty or colliding
// with the destination store; the caller resolves occupancy and mints
// replacements via catalog.NewID.
func Decode(data []byte, now time.Time) (records []catalog.Outfit, skipped int, err error) {
	if err := validateShape(data); err != nil {
		return nil, 0, err
	}

	var doc struct {
		Outfits []json.RawMessage `json:"outfits"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		// Shape already validated; reaching this means non-object entries
		// or similar. Still a document-level failure.
		return nil, 0, &FormatError{Reason: "unreadable outfits list", Err: err}
	}

	records = make([]catalog.Outfit, 0, len(doc.Outfits))
	for _, raw := range doc.Outfits {
		o, ok := decodeEntry(raw, now)
		if !ok {
			skipped++
			continue
		}
		records = append(records, o)
	}

	return records, skipped, nil
}

// validateShape checks the document against the embedded CUE schema.
func validateShape(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(documentSchema, cue.Filename("document.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return &FormatError{Reason: "not a JSON document", Err: err}
	}

	val := ctx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return &FormatError{Reason: "not a JSON document", Err: err}
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &FormatError{Reason: "outfits must be a list", Err: err}
	}

	return nil
}

// decodeEntry leniently converts one entry. Returns ok=false only when the
// entry carries no usable image data.
func decodeEntry(raw json.RawMessage, now time.Time) (catalog.Outfit, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return catalog.Outfit{}, false
	}

	image, ok := decodeImage(asString(m["imageDataUrl"]))
	if !ok {
		return catalog.Outfit{}, false
	}

	o := catalog.Outfit{
		ID:         asString(m["id"]),
		Name:       catalog.NormalizeName(asString(m["name"])),
		Rating:     catalog.ClampRating(asNumber(m["rating"])),
		Favorite:   asBool(m["favorite"]),
		Tags:       catalog.NormalizeTags(asStrings(m["tags"])),
		Notes:      asString(m["notes"]),
		CreatedAt:  int64(asNumber(m["createdAt"])),
		WearCount:  int(asNumber(m["wearCount"])),
		LastWornAt: int64(asNumber(m["lastWornAt"])),
		Image:      image,
	}

	if o.CreatedAt <= 0 {
		o.CreatedAt = catalog.Millis(now)
	}
	if o.WearCount < 0 {
		o.WearCount = 0
	}
	if o.LastWornAt < 0 {
		o.LastWornAt = 0
	}

	return o, true
}

// asString returns v if it is a string, else "".
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asNumber returns v if it is a JSON number, else 0.
func asNumber(v any) float64 {
	f, _ := v.(float64)
	return f
}

// asBool returns v if it is a bool, else false.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asStrings returns the string members of a JSON array, else nil.
func asStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
