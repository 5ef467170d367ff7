package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/appwrite"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// Service is the backend surface Submit needs. *appwrite.Client satisfies it.
type Service interface {
	UploadFile(ctx context.Context, name string, r io.Reader) (appwrite.File, error)
	FileViewURL(fileID string) string
	DeleteFile(ctx context.Context, fileID string) error
	CreateDocument(ctx context.Context, collectionID string, data map[string]any) (appwrite.Document, error)
}

// SubmitError wraps a failure in the publish flow with the step it died in.
type SubmitError struct {
	Step string
	Err  error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Step, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Submit validates the form and runs the publish flow. The thumbnail is
// staged first and must succeed before the document is created; if the
// document create then fails, the staged file is removed so the bucket
// does not accumulate orphans.
func Submit(ctx context.Context, svc Service, collectionID string, form Form, log *zap.Logger) (reel.Item, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := form.Validate(); err != nil {
		return reel.Item{}, err
	}

	thumbnailURL := form.ThumbnailURL
	stagedFileID := ""
	if form.ThumbnailPath != "" {
		file, err := stageThumbnail(ctx, svc, form.ThumbnailPath)
		if err != nil {
			return reel.Item{}, err
		}
		stagedFileID = file.ID
		thumbnailURL = svc.FileViewURL(file.ID)
		log.Info("thumbnail staged",
			zap.String("file_id", file.ID),
			zap.Int64("bytes", file.Size))
	}

	doc, err := svc.CreateDocument(ctx, collectionID, form.payload(thumbnailURL))
	if err != nil {
		if stagedFileID != "" {
			if cleanupErr := svc.DeleteFile(ctx, stagedFileID); cleanupErr != nil {
				log.Warn("orphaned thumbnail left in bucket",
					zap.String("file_id", stagedFileID),
					zap.Error(cleanupErr))
			}
		}
		return reel.Item{}, &SubmitError{Step: "create", Err: err}
	}

	item, ok := reel.Normalize(map[string]any(doc))
	if !ok {
		return reel.Item{}, &SubmitError{Step: "create", Err: fmt.Errorf("backend returned document without id")}
	}
	log.Info("reel published",
		zap.String("id", item.ID),
		zap.String("kind", form.Kind.String()))
	return item, nil
}

// payload builds the document body. Field names match what the normalizer
// reads back, so a round trip through the backend is lossless. Featured
// submissions use the featured collection's attribute names (videoTitle,
// videoUrl); reels use reelTitle/reelUrl.
func (f *Form) payload(thumbnailURL string) map[string]any {
	titleKey, urlKey := "reelTitle", "reelUrl"
	if f.IsFeatured {
		titleKey, urlKey = "videoTitle", "videoUrl"
	}
	data := map[string]any{
		titleKey:      strings.TrimSpace(f.Title),
		urlKey:        f.MediaURL,
		"isPublished": f.IsPublished,
		"isFeatured":  f.IsFeatured,
	}
	if f.Description != "" {
		data["description"] = f.Description
	}
	if thumbnailURL != "" {
		data["thumbnailUrl"] = thumbnailURL
	}
	if f.DurationSeconds > 0 {
		data["durationInSeconds"] = f.DurationSeconds
	}
	if len(f.Tags) > 0 {
		data["tags"] = f.Tags
	}
	if f.Category != "" {
		data["category"] = f.Category
	}
	return data
}

// stageThumbnail checks the local file against the bucket limits and
// uploads it. The MIME sniff uses the file contents, not the extension.
func stageThumbnail(ctx context.Context, svc Service, path string) (appwrite.File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return appwrite.File{}, &FieldError{Field: "thumbnail", Reason: "cannot read file"}
	}
	if fi.Size() > MaxThumbnailBytes {
		return appwrite.File{}, &FieldError{
			Field:  "thumbnail",
			Reason: fmt.Sprintf("%d bytes, limit is %d", fi.Size(), int64(MaxThumbnailBytes)),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return appwrite.File{}, &FieldError{Field: "thumbnail", Reason: "cannot read file"}
	}
	if mime := http.DetectContentType(data); !strings.HasPrefix(mime, "image/") {
		return appwrite.File{}, &FieldError{Field: "thumbnail", Reason: fmt.Sprintf("not an image (%s)", mime)}
	}

	file, err := svc.UploadFile(ctx, filepath.Base(path), bytes.NewReader(data))
	if err != nil {
		return appwrite.File{}, &SubmitError{Step: "upload", Err: err}
	}
	return file, nil
}
