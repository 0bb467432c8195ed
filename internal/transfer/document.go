package transfer

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Version is the export document version emitted by this build.
const Version = 1

// dataURLPrefix is the self-describing image encoding used in documents.
const dataURLPrefix = "data:image/jpeg;base64,"

// Document is the portable export format.
type Document struct {
	Version    int     `json:"version"`
	ExportedAt string  `json:"exportedAt"`
	Outfits    []Entry `json:"outfits"`
}

// Entry mirrors the record fields with the image embedded as a data URI.
type Entry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Rating       int      `json:"rating"`
	Favorite     bool     `json:"favorite"`
	CreatedAt    int64    `json:"createdAt"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes"`
	WearCount    int      `json:"wearCount"`
	LastWornAt   int64    `json:"lastWornAt"`
	ImageDataURL string   `json:"imageDataUrl"`
}

// FormatError reports a malformed import document. The whole import is
// aborted; zero records are applied.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// encodeImage wraps JPEG bytes in a data URI.
func encodeImage(jpeg []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(jpeg)
}

// decodeImage extracts image bytes from a data URI.
// Any base64 payload after a "data:*;base64," prefix is accepted; the media
// type is advisory. Returns false when no usable image data is present.
func decodeImage(dataURL string) ([]byte, bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, false
	}
	idx := strings.Index(dataURL, "base64,")
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len("base64,"):])
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}
