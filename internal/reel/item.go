// Package reel defines the canonical item shape shared across the gallery
// and the carousel, and the normalization boundary that converts raw
// backend documents into it. Collections in the portfolio predate a common
// schema (reel documents say reelTitle/reelUrl, featured videos say
// videoTitle/videoUrl), so every record passes through Normalize exactly
// once at the system edge; nothing downstream branches on source field
// names again.
package reel

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderThumbnail is used when a record carries no usable image.
const PlaceholderThumbnail = "assets/thumb-placeholder.jpg"

// DefaultCategory is assigned when a record has no category attribute.
const DefaultCategory = "entertainment"

// Categories is the fixed set offered in the publish form. DefaultCategory
// is always the first entry.
var Categories = []string{
	"entertainment",
	"comedy",
	"educational",
	"music",
	"dance",
	"sports",
	"cooking",
	"travel",
	"fashion",
	"technology",
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// MaxTags caps how many tags an item keeps for display.
const MaxTags = 10

// Item is the canonical, post-normalization record for one video or reel.
type Item struct {
	ID              string
	Title           string
	MediaURL        string
	ThumbnailURL    string
	DurationSeconds int
	Description     string
	Tags            []string
	Category        string
	Views           int
	Likes           int
	IsPublished     bool
	IsFeatured      bool

	// DisplayAspect is a rendering-only attribute assigned once when the
	// item first enters the in-memory collection. It must stay stable for
	// the lifetime of the item; refetches never overwrite it.
	DisplayAspect string
}

// Normalize converts a raw backend document into an Item. It returns
// ok=false when the record carries no identifier at all; such rows cannot
// be edited or deleted later and are excluded rather than half-adopted.
// Normalize never fails for any other reason: missing or malformed
// attributes degrade to defaults.
func Normalize(raw map[string]any) (Item, bool) {
	id := stringField(raw, "$id", "id")
	if id == "" {
		return Item{}, false
	}

	title := strings.TrimSpace(stringField(raw, "reelTitle", "videoTitle", "title"))
	if title == "" {
		title = "Untitled Project"
	}

	thumb := strings.TrimSpace(stringField(raw, "thumbnailUrl", "imageUrl", "thumbnail"))
	if thumb == "" {
		thumb = PlaceholderThumbnail
	}

	category := strings.TrimSpace(stringField(raw, "category"))
	if category == "" {
		category = DefaultCategory
	}

	return Item{
		ID:              id,
		Title:           title,
		MediaURL:        strings.TrimSpace(stringField(raw, "reelUrl", "videoUrl", "mediaUrl")),
		ThumbnailURL:    thumb,
		DurationSeconds: intField(raw, "durationInSeconds", "durationSeconds"),
		Description:     stringField(raw, "description"),
		Tags:            tagsField(raw, "tags"),
		Category:        category,
		Views:           intField(raw, "views"),
		Likes:           intField(raw, "likes"),
		IsPublished:     boolField(raw, "isPublished"),
		IsFeatured:      boolField(raw, "isFeatured"),
	}, true
}

// NormalizeAll converts a page of raw documents, silently dropping records
// without identifiers. Order is preserved.
func NormalizeAll(raws []map[string]any) []Item {
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		if item, ok := Normalize(raw); ok {
			items = append(items, item)
		}
	}
	return items
}

// FormatDuration renders a duration in seconds as m:ss, e.g. 125 -> "2:05".
// Negative input renders as "0:00".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// intField coerces numbers that arrive as JSON floats, ints, or numeric
// strings. Anything unparseable counts as zero so display math never sees
// an undefined value.
func intField(raw map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			if v > 0 {
				return int(v)
			}
		case int:
			if v > 0 {
				return v
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

func boolField(raw map[string]any, key string) bool {
	v, ok := raw[key].(bool)
	return ok && v
}

func tagsField(raw map[string]any, key string) []string {
	values, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		tag, ok := v.(string)
		if !ok {
			continue
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
