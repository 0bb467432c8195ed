package view

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"wardrobe/internal/catalog"
)

// Derive computes the display sequence for the given records and spec.
//
// Pipeline order: favoriteOnly, minRating, staleDays, tag, search, then the
// favorites-only sort-mode filter, then exactly one stable sort. An
// unrecognized sort mode leaves the filtered sequence in input order.
//
// The input slice is never mutated.
func Derive(records []catalog.Outfit, spec Spec, now time.Time) []catalog.Outfit {
	out := make([]catalog.Outfit, 0, len(records))

	nowMillis := catalog.Millis(now)
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	tag := strings.ToLower(strings.TrimSpace(spec.Filter.Tag))

	for _, o := range records {
		if spec.Filter.FavoriteOnly && !o.Favorite {
			continue
		}
		if spec.Filter.MinRating > 0 && o.Rating < spec.Filter.MinRating {
			continue
		}
		if spec.Filter.StaleDays > 0 && !isStale(o, nowMillis, spec.Filter.StaleDays) {
			continue
		}
		if tag != "" && !slices.Contains(o.Tags, tag) {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		// Overlaps with FavoriteOnly; harmless when both are set.
		if spec.Sort == SortFavoritesOnly && !o.Favorite {
			continue
		}
		out = append(out, o)
	}

	sortSequence(out, spec.Sort)
	return out
}

// isStale reports whether the outfit has never been worn or was last worn
// more than staleDays days before now.
func isStale(o catalog.Outfit, nowMillis int64, staleDays int) bool {
	if o.NeverWorn() {
		return true
	}
	return o.LastWornAt < nowMillis-int64(staleDays)*catalog.MillisPerDay
}

// matchesSearch does a case-insensitive substring match against name or notes.
func matchesSearch(o catalog.Outfit, search string) bool {
	return strings.Contains(strings.ToLower(o.Name), search) ||
		strings.Contains(strings.ToLower(o.Notes), search)
}

// sortSequence applies the stable sort for the given mode in place.
// Unrecognized modes (including SortFavoritesOnly, which only filters)
// leave the order unchanged.
func sortSequence(seq []catalog.Outfit, mode Sort) {
	switch mode {
	case SortFavoriteFirst:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			if a.Favorite != b.Favorite {
				if a.Favorite {
					return -1
				}
				return 1
			}
			return compareInt64(b.CreatedAt, a.CreatedAt)
		})
	case SortCreatedAsc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return compareInt64(a.CreatedAt, b.CreatedAt)
		})
	case SortCreatedDesc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return compareInt64(b.CreatedAt, a.CreatedAt)
		})
	case SortRatingAsc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return a.Rating - b.Rating
		})
	case SortRatingDesc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return b.Rating - a.Rating
		})
	case SortNameAsc:
		c := newNameCollator()
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortNameDesc:
		c := newNameCollator()
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return c.CompareString(b.Name, a.Name)
		})
	case SortWearAsc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return a.WearCount - b.WearCount
		})
	case SortWearDesc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return b.WearCount - a.WearCount
		})
	case SortWornAsc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return compareInt64(a.LastWornAt, b.LastWornAt)
		})
	case SortWornDesc:
		slices.SortStableFunc(seq, func(a, b catalog.Outfit) int {
			return compareInt64(b.LastWornAt, a.LastWornAt)
		})
	}
}

// newNameCollator builds the collator for locale-aware name comparison.
// Collators carry internal buffers and are not safe for concurrent use,
// so each sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
