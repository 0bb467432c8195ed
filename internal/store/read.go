package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wardrobe/internal/catalog"
)

// Get retrieves a single outfit by id.
// Returns catalog.ErrNotFound (wrapped) if the id is absent.
func (s *Store) Get(ctx context.Context, id string) (catalog.Outfit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, rating, favorite, tags, notes, created_at, wear_count, last_worn_at, image
		FROM outfits
		WHERE id = ?
	`, id)

	o, err := scanOutfitRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Outfit{}, fmt.Errorf("get outfit %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return catalog.Outfit{}, fmt.Errorf("get outfit: %w", err)
	}
	return o, nil
}

// GetAll returns the full record set.
// Rows come back in id order for determinism, but callers must not rely on
// any ordering: the view engine owns display order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) GetAll(ctx context.Context) ([]catalog.Outfit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, rating, favorite, tags, notes, created_at, wear_count, last_worn_at, image
		FROM outfits
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	defer rows.Close()

	var outfits []catalog.Outfit
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		outfits = append(outfits, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfits: %w", err)
	}

	if outfits == nil {
		outfits = []catalog.Outfit{}
	}

	return outfits, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outfits`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count outfits: %w", err)
	}
	return count, nil
}

// scanOutfit scans a multi-row result into an Outfit.
func scanOutfit(rows *sql.Rows) (catalog.Outfit, error) {
	var o catalog.Outfit
	var favorite int
	var tagsJSON string

	if err := rows.Scan(
		&o.ID, &o.Name, &o.Rating, &favorite, &tagsJSON,
		&o.Notes, &o.CreatedAt, &o.WearCount, &o.LastWornAt, &o.Image,
	); err != nil {
		return catalog.Outfit{}, fmt.Errorf("scan outfit: %w", err)
	}

	o.Favorite = favorite != 0

	tags, err := unmarshalTags(tagsJSON)
	if err != nil {
		return catalog.Outfit{}, err
	}
	o.Tags = tags

	return o, nil
}

// scanOutfitRow scans a single-row result into an Outfit.
// Passes sql.ErrNoRows through for the caller to map.
func scanOutfitRow(row *sql.Row) (catalog.Outfit, error) {
	var o catalog.Outfit
	var favorite int
	var tagsJSON string

	if err := row.Scan(
		&o.ID, &o.Name, &o.Rating, &favorite, &tagsJSON,
		&o.Notes, &o.CreatedAt, &o.WearCount, &o.LastWornAt, &o.Image,
	); err != nil {
		return catalog.Outfit{}, err
	}

	o.Favorite = favorite != 0

	tags, err := unmarshalTags(tagsJSON)
	if err != nil {
		return catalog.Outfit{}, err
	}
	o.Tags = tags

	return o, nil
}
