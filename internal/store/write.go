package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"wardrobe/internal/catalog"
)

// Add inserts a new outfit record.
// Returns catalog.ErrDuplicateID (wrapped) if the id already exists.
// The record is sanitized before persisting; the caller's copy is not mutated.
func (s *Store) Add(ctx context.Context, o catalog.Outfit) error {
	catalog.Sanitize(&o)

	tagsJSON, err := marshalTags(o.Tags)
	if err != nil {
		return fmt.Errorf("add outfit: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outfits
		(id, name, rating, favorite, tags, notes, created_at, wear_count, last_worn_at, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID,
		o.Name,
		o.Rating,
		boolToInt(o.Favorite),
		tagsJSON,
		o.Notes,
		o.CreatedAt,
		o.WearCount,
		o.LastWornAt,
		o.Image,
	)
	if err != nil {
		if isPrimaryKeyConflict(err) {
			return fmt.Errorf("add outfit %s: %w", o.ID, catalog.ErrDuplicateID)
		}
		return fmt.Errorf("add outfit: %w", err)
	}

	return nil
}

// Put upserts an outfit record: inserts if absent, replaces all mutable
// fields if present. Uses ON CONFLICT(id) DO UPDATE so the write stays a
// single atomic statement.
func (s *Store) Put(ctx context.Context, o catalog.Outfit) error {
	catalog.Sanitize(&o)

	tagsJSON, err := marshalTags(o.Tags)
	if err != nil {
		return fmt.Errorf("put outfit: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outfits
		(id, name, rating, favorite, tags, notes, created_at, wear_count, last_worn_at, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			rating = excluded.rating,
			favorite = excluded.favorite,
			tags = excluded.tags,
			notes = excluded.notes,
			wear_count = excluded.wear_count,
			last_worn_at = excluded.last_worn_at
	`,
		o.ID,
		o.Name,
		o.Rating,
		boolToInt(o.Favorite),
		tagsJSON,
		o.Notes,
		o.CreatedAt,
		o.WearCount,
		o.LastWornAt,
		o.Image,
	)
	if err != nil {
		return fmt.Errorf("put outfit: %w", err)
	}

	return nil
}

// Delete removes an outfit by id.
// Returns catalog.ErrNotFound (wrapped) if no row matched; callers that
// treat delete as no-op-safe can errors.Is-check and ignore it.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM outfits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete outfit: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete outfit %s: %w", id, catalog.ErrNotFound)
	}

	return nil
}

// isPrimaryKeyConflict reports whether err is a SQLite primary key
// constraint violation.
func isPrimaryKeyConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
