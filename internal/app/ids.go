package app

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const hotelIDPrefix = "h"

// NewHotelID returns "h" followed by 12 hex chars of a random UUID (48 random bits).
func NewHotelID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hotelIDPrefix + hex[:12]
}

// Slugify lowercases, transliterates and hyphenates text. Input with nothing
// sluggable (empty, whitespace, pure punctuation) gives "".
func Slugify(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return slug.Make(text)
}
