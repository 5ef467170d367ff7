package upload

import (
	"errors"
	"strings"
	"testing"
)

func validReelForm() Form {
	return Form{
		Kind:            KindReel,
		Title:           "Color Grade Breakdown",
		MediaURL:        "https://youtu.be/abc123",
		DurationSeconds: 42,
	}
}

func TestValidate_AcceptsMinimalForm(t *testing.T) {
	form := validReelForm()
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate returned error for valid form: %v", err)
	}

	form.Category = "music"
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate rejected known category: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"missing title", func(f *Form) { f.Title = "   " }, "title"},
		{"title too long", func(f *Form) { f.Title = strings.Repeat("x", MaxTitleLen+1) }, "title"},
		{"description too long", func(f *Form) { f.Description = strings.Repeat("x", MaxDescriptionLen+1) }, "description"},
		{"missing media url", func(f *Form) { f.MediaURL = "" }, "media url"},
		{"media url too long", func(f *Form) { f.MediaURL = "https://e.com/" + strings.Repeat("x", MaxURLLen) }, "media url"},
		{"media url not http", func(f *Form) { f.MediaURL = "ftp://example.com/clip" }, "media url"},
		{"media url garbage", func(f *Form) { f.MediaURL = "://nope" }, "media url"},
		{"thumbnail both set", func(f *Form) { f.ThumbnailPath = "a.jpg"; f.ThumbnailURL = "https://e.com/a.jpg" }, "thumbnail"},
		{"thumbnail url invalid", func(f *Form) { f.ThumbnailURL = "not a url" }, "thumbnail url"},
		{"duration zero", func(f *Form) { f.DurationSeconds = 0 }, "duration"},
		{"duration negative", func(f *Form) { f.DurationSeconds = -3 }, "duration"},
		{"reel over a minute", func(f *Form) { f.DurationSeconds = 61 }, "duration"},
		{"too many tags", func(f *Form) { f.Tags = make([]string, MaxTags+1); for i := range f.Tags { f.Tags[i] = "t" } }, "tags"},
		{"blank tag", func(f *Form) { f.Tags = []string{"ok", " "} }, "tags"},
		{"unknown category", func(f *Form) { f.Category = "webinars" }, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validReelForm()
			tc.mutate(&form)
			err := form.Validate()
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Validate = %v, want *FieldError", err)
			}
			if fieldErr.Field != tc.wantField {
				t.Fatalf("failed field = %q, want %q", fieldErr.Field, tc.wantField)
			}
		})
	}
}

func TestValidate_KindProfiles(t *testing.T) {
	long := validReelForm()
	long.Kind = KindLongForm
	long.DurationSeconds = 2 * 60 * 60
	if err := long.Validate(); err != nil {
		t.Fatalf("two-hour long-form rejected: %v", err)
	}

	long.DurationSeconds = maxLongFormSeconds + 1
	if err := long.Validate(); err == nil {
		t.Fatalf("over-limit long-form accepted")
	}

	// The tag cap applies to reels only.
	long.DurationSeconds = 100
	long.Tags = make([]string, MaxTags+5)
	for i := range long.Tags {
		long.Tags[i] = "tag"
	}
	if err := long.Validate(); err != nil {
		t.Fatalf("long-form with many tags rejected: %v", err)
	}
}
