package view

// Sort selects the ordering of the display sequence.
type Sort string

const (
	// SortFavoriteFirst orders favorites before non-favorites,
	// ties broken by creation time descending.
	SortFavoriteFirst Sort = "favorite-first"

	// SortFavoritesOnly restricts the sequence to favorites and otherwise
	// leaves the order unchanged. It filters; it does not reorder.
	SortFavoritesOnly Sort = "favorites-only"

	SortCreatedAsc  Sort = "created-asc"
	SortCreatedDesc Sort = "created-desc"

	SortRatingAsc  Sort = "rating-asc"
	SortRatingDesc Sort = "rating-desc"

	// Name sorts are locale-aware lexicographic.
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"

	SortWearAsc  Sort = "wear-asc"
	SortWearDesc Sort = "wear-desc"

	SortWornAsc  Sort = "worn-asc"
	SortWornDesc Sort = "worn-desc"
)

// Filter narrows the record set before sorting.
// Zero values mean "no filtering" for every field.
type Filter struct {
	// FavoriteOnly keeps only favorites.
	FavoriteOnly bool

	// MinRating keeps records with rating >= MinRating when > 0.
	MinRating int

	// StaleDays, when > 0, keeps records never worn or last worn more than
	// StaleDays days before now.
	StaleDays int

	// Tag keeps records carrying the tag when non-empty.
	Tag string
}

// Spec is the full filter/sort/search specification for one derivation.
// Transient UI-session state; never persisted with the records.
type Spec struct {
	Search string
	Sort   Sort
	Filter Filter
}
