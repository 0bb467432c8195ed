package catalog

import (
	"math"
	"strings"
)

// PlaceholderName replaces a missing or blank name at every write boundary.
const PlaceholderName = "Untitled outfit"

// MaxTags caps the tag set size; parsing drops anything beyond the cap.
const MaxTags = 30

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5

// NormalizeName trims the name and substitutes the placeholder when blank.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return PlaceholderName
	}
	return name
}

// ClampRating rounds the input to the nearest integer and clamps it into
// [0, MaxRating]. Inputs already in range round-trip unchanged.
func ClampRating(r float64) int {
	if math.IsNaN(r) {
		return 0
	}
	n := int(math.Round(r))
	if n < 0 {
		return 0
	}
	if n > MaxRating {
		return MaxRating
	}
	return n
}

// ParseTags splits comma-separated tag text into a normalized tag set.
// Entries are trimmed, lowercased and de-duplicated; empties are dropped.
// Order is first-occurrence order. The result is capped at MaxTags.
func ParseTags(text string) []string {
	return NormalizeTags(strings.Split(text, ","))
}

// NormalizeTags applies the tag rules to an already-split list.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// Sanitize applies every field-normalization rule in place.
// Store writers call this so no unnormalized record is ever persisted.
func Sanitize(o *Outfit) {
	o.Name = NormalizeName(o.Name)
	o.Rating = ClampRating(float64(o.Rating))
	o.Notes = strings.TrimSpace(o.Notes)
	o.Tags = NormalizeTags(o.Tags)
	if o.WearCount < 0 {
		o.WearCount = 0
	}
	if o.LastWornAt < 0 {
		o.LastWornAt = 0
	}
}
