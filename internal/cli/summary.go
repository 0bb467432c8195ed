package cli

import (
	"fmt"
	"strings"
	"time"

	"wardrobe/internal/catalog"
)

// OutfitSummary is the JSON view of a record without the image payload.
type OutfitSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Rating     int      `json:"rating"`
	Favorite   bool     `json:"favorite"`
	Tags       []string `json:"tags"`
	Notes      string   `json:"notes,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	WearCount  int      `json:"wearCount"`
	LastWornAt string   `json:"lastWornAt,omitempty"`
}

func summarize(o catalog.Outfit) OutfitSummary {
	s := OutfitSummary{
		ID:        o.ID,
		Name:      o.Name,
		Rating:    o.Rating,
		Favorite:  o.Favorite,
		Tags:      o.Tags,
		Notes:     o.Notes,
		CreatedAt: formatMillis(o.CreatedAt),
		WearCount: o.WearCount,
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if !o.NeverWorn() {
		s.LastWornAt = formatMillis(o.LastWornAt)
	}
	return s
}

func summarizeAll(outfits []catalog.Outfit) []OutfitSummary {
	out := make([]OutfitSummary, len(outfits))
	for i, o := range outfits {
		out[i] = summarize(o)
	}
	return out
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// outfitLine renders one record for list-style text output.
func outfitLine(o catalog.Outfit) string {
	marks := strings.Repeat("★", o.Rating)
	fav := " "
	if o.Favorite {
		fav = "♥"
	}
	worn := "never worn"
	if !o.NeverWorn() {
		worn = fmt.Sprintf("worn %d×", o.WearCount)
	}
	return fmt.Sprintf("%s  %s %-28s %-5s  %s", o.ID, fav, o.Name, marks, worn)
}
