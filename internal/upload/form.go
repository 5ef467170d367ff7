// Package upload validates new-reel submissions and runs the two-step
// publish flow: stage the thumbnail in the storage bucket, then create
// the document pointing at the hosted file. A failed upload aborts the
// whole submission so the collection never references a missing asset.
package upload

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/reelgrid/reelgrid/internal/reel"
)

// Kind selects the validation profile for a submission.
type Kind int

const (
	// KindReel is a short vertical clip, capped at one minute.
	KindReel Kind = iota
	// KindLongForm is a full-length video, capped at six hours.
	KindLongForm
)

func (k Kind) String() string {
	if k == KindLongForm {
		return "long-form"
	}
	return "reel"
}

// Field limits shared with the backend collection schema.
const (
	MaxTitleLen       = 256
	MaxDescriptionLen = 1024
	MaxURLLen         = 512
	MaxTags           = 10
	MaxThumbnailBytes = 5 << 20

	maxReelSeconds     = 60
	maxLongFormSeconds = 6 * 60 * 60
)

// Form is a pending submission as collected from the UI. Exactly one of
// ThumbnailPath and ThumbnailURL may be set: a local file is staged in
// the bucket during Submit, a URL is stored as-is.
type Form struct {
	Kind            Kind
	Title           string
	Description     string
	MediaURL        string
	ThumbnailPath   string
	ThumbnailURL    string
	DurationSeconds int
	Tags            []string
	Category        string
	IsPublished     bool
	IsFeatured      bool
}

// FieldError reports a single invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks every field and returns the first failure. The UI keeps
// the form open and highlights the offending field.
func (f *Form) Validate() error {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return &FieldError{Field: "title", Reason: "required"}
	}
	if len(title) > MaxTitleLen {
		return &FieldError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", MaxTitleLen)}
	}
	if len(f.Description) > MaxDescriptionLen {
		return &FieldError{Field: "description", Reason: fmt.Sprintf("longer than %d characters", MaxDescriptionLen)}
	}

	if err := validateURL("media url", f.MediaURL, true); err != nil {
		return err
	}

	hasFile := f.ThumbnailPath != ""
	hasURL := f.ThumbnailURL != ""
	if hasFile && hasURL {
		return &FieldError{Field: "thumbnail", Reason: "choose a file or a url, not both"}
	}
	if hasURL {
		if err := validateURL("thumbnail url", f.ThumbnailURL, false); err != nil {
			return err
		}
	}

	max := maxReelSeconds
	if f.Kind == KindLongForm {
		max = maxLongFormSeconds
	}
	if f.DurationSeconds < 1 || f.DurationSeconds > max {
		return &FieldError{
			Field:  "duration",
			Reason: fmt.Sprintf("must be between 1 and %d seconds for a %s", max, f.Kind),
		}
	}

	if f.Category != "" && !reel.ValidCategory(f.Category) {
		return &FieldError{
			Field:  "category",
			Reason: "unknown category, expected one of: " + strings.Join(reel.Categories, ", "),
		}
	}

	if f.Kind == KindReel && len(f.Tags) > MaxTags {
		return &FieldError{Field: "tags", Reason: fmt.Sprintf("at most %d tags", MaxTags)}
	}
	for _, tag := range f.Tags {
		if strings.TrimSpace(tag) == "" {
			return &FieldError{Field: "tags", Reason: "blank tag"}
		}
	}
	return nil
}

func validateURL(field, raw string, required bool) error {
	if raw == "" {
		if required {
			return &FieldError{Field: field, Reason: "required"}
		}
		return nil
	}
	if len(raw) > MaxURLLen {
		return &FieldError{Field: field, Reason: fmt.Sprintf("longer than %d characters", MaxURLLen)}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &FieldError{Field: field, Reason: "not a valid http(s) url"}
	}
	return nil
}
