package store

import (
	"encoding/json"
	"fmt"

	"wardrobe/internal/catalog"
)

// marshalTags converts the tag list to JSON TEXT for storage.
// A nil list is stored as "[]" so the column is never NULL.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

// unmarshalTags parses the stored JSON tag list and re-applies the tag rules,
// so rows written by older builds still come back normalized.
func unmarshalTags(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(text), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return catalog.NormalizeTags(tags), nil
}
