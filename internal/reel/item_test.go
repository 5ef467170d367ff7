package reel

import (
	"reflect"
	"testing"
)

func TestNormalize_RejectsRecordsWithoutIdentifier(t *testing.T) {
	raw := map[string]any{
		"reelTitle": "Orphan",
		"reelUrl":   "https://youtu.be/abc",
	}
	if _, ok := Normalize(raw); ok {
		t.Fatalf("Normalize accepted a record with no identifier")
	}

	if items := NormalizeAll([]map[string]any{raw, {"$id": "a"}}); len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("NormalizeAll = %#v, want only the identified record", items)
	}
}

func TestNormalize_TitlePrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"reel title wins", map[string]any{"$id": "1", "reelTitle": "Reel", "videoTitle": "Video", "title": "Generic"}, "Reel"},
		{"video title next", map[string]any{"$id": "1", "videoTitle": "Video", "title": "Generic"}, "Video"},
		{"generic title next", map[string]any{"$id": "1", "title": "Generic"}, "Generic"},
		{"fallback", map[string]any{"$id": "1"}, "Untitled Project"},
		{"blank falls through", map[string]any{"$id": "1", "reelTitle": "   "}, "Untitled Project"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item, ok := Normalize(tc.raw)
			if !ok {
				t.Fatalf("Normalize rejected record")
			}
			if item.Title != tc.want {
				t.Fatalf("Title = %q, want %q", item.Title, tc.want)
			}
		})
	}
}

func TestNormalize_ThumbnailAndCategoryDefaults(t *testing.T) {
	item, ok := Normalize(map[string]any{"$id": "1"})
	if !ok {
		t.Fatalf("Normalize rejected record")
	}
	if item.ThumbnailURL != PlaceholderThumbnail {
		t.Fatalf("ThumbnailURL = %q, want placeholder", item.ThumbnailURL)
	}
	if item.Category != DefaultCategory {
		t.Fatalf("Category = %q, want %q", item.Category, DefaultCategory)
	}

	item, _ = Normalize(map[string]any{"$id": "1", "imageUrl": "https://img/x.jpg", "category": "travel"})
	if item.ThumbnailURL != "https://img/x.jpg" {
		t.Fatalf("ThumbnailURL = %q, want imageUrl fallback", item.ThumbnailURL)
	}
	if item.Category != "travel" {
		t.Fatalf("Category = %q, want travel", item.Category)
	}
}

func TestNormalize_NumericCoercion(t *testing.T) {
	item, _ := Normalize(map[string]any{
		"$id":               "1",
		"durationInSeconds": float64(45),
		"views":             "1200",
		"likes":             map[string]any{"bogus": true},
	})
	if item.DurationSeconds != 45 {
		t.Fatalf("DurationSeconds = %d, want 45", item.DurationSeconds)
	}
	if item.Views != 1200 {
		t.Fatalf("Views = %d, want 1200 from numeric string", item.Views)
	}
	if item.Likes != 0 {
		t.Fatalf("Likes = %d, want 0 for unparseable value", item.Likes)
	}
}

func TestNormalize_TagsCappedAndCleaned(t *testing.T) {
	tags := make([]any, 0, 14)
	for _, v := range []string{"a", " ", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m"} {
		tags = append(tags, v)
	}
	item, _ := Normalize(map[string]any{"$id": "1", "tags": tags})
	want := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	if !reflect.DeepEqual(item.Tags, want) {
		t.Fatalf("Tags = %v, want first %d non-blank tags", item.Tags, MaxTags)
	}

	item, _ = Normalize(map[string]any{"$id": "1", "tags": "not-a-list"})
	if item.Tags != nil {
		t.Fatalf("Tags = %v, want nil for non-list value", item.Tags)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{125, "2:05"},
		{59, "0:59"},
		{0, "0:00"},
		{-7, "0:00"},
		{3600, "60:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory(DefaultCategory) {
		t.Fatalf("ValidCategory(%q) = false, want true", DefaultCategory)
	}
	if !ValidCategory("music") {
		t.Fatalf("ValidCategory(music) = false, want true")
	}
	if ValidCategory("webinars") || ValidCategory("") {
		t.Fatalf("unknown categories accepted")
	}
	if Categories[0] != DefaultCategory {
		t.Fatalf("Categories[0] = %q, want the default %q", Categories[0], DefaultCategory)
	}
}
