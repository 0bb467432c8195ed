package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"wardrobe/internal/catalog"
)

// Export builds the document for a record set.
func Export(records []catalog.Outfit, now time.Time) Document {
	entries := make([]Entry, 0, len(records))
	for _, o := range records {
		entries = append(entries, Entry{
			ID:           o.ID,
			Name:         o.Name,
			Rating:       o.Rating,
			Favorite:     o.Favorite,
			CreatedAt:    o.CreatedAt,
			Tags:         tagsOrEmpty(o.Tags),
			Notes:        o.Notes,
			WearCount:    o.WearCount,
			LastWornAt:   o.LastWornAt,
			ImageDataURL: encodeImage(o.Image),
		})
	}

	return Document{
		Version:    Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Outfits:    entries,
	}
}

// Encode serializes records to document JSON.
// Output is indented and HTML escaping is off, so documents diff cleanly
// and round-trip byte-identically for golden comparison.
func Encode(records []catalog.Outfit, now time.Time) ([]byte, error) {
	doc := Export(records, now)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// tagsOrEmpty keeps the tags field a JSON array, never null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
