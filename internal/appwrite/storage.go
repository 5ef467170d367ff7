package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"regexp"

	"github.com/google/uuid"
)

// File mirrors the storage file record returned after an upload.
type File struct {
	ID       string `json:"$id"`
	BucketID string `json:"bucketId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"sizeOriginal"`
}

// UploadFile streams a file into the project's bucket under a generated id
// and returns the stored file record.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("fileId", uuid.NewString()); err != nil {
		return File{}, fmt.Errorf("write fileId field: %w", err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return File{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return File{}, fmt.Errorf("copy file payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return File{}, fmt.Errorf("finish multipart body: %w", err)
	}

	rel := c.endpointURL(fmt.Sprintf("/storage/buckets/%s/files", c.bucketID), nil)

	var file File
	if err := c.do(ctx, "POST", rel, &buf, writer.FormDataContentType(), &file); err != nil {
		return File{}, err
	}
	return file, nil
}

// FileViewURL returns the public view URL for an uploaded file. The URL is
// constructed locally; no request is made.
func (c *Client) FileViewURL(fileID string) string {
	rel := c.endpointURL(
		fmt.Sprintf("/storage/buckets/%s/files/%s/view", c.bucketID, fileID),
		url.Values{"project": []string{c.project}},
	)
	return c.baseURL.ResolveReference(rel).String()
}

// DeleteFile removes a file from the bucket.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("file id is required")
	}
	rel := c.endpointURL(fmt.Sprintf("/storage/buckets/%s/files/%s", c.bucketID, fileID), nil)
	return c.do(ctx, "DELETE", rel, nil, "", nil)
}

var fileURLPattern = regexp.MustCompile(`/storage/buckets/[^/]+/files/([^/?]+)/(?:view|preview)`)

// FileIDFromURL extracts the file id from a storage view or preview URL.
// Returns "" when the URL does not point at this storage service.
func FileIDFromURL(rawURL string) string {
	matches := fileURLPattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return ""
	}
	return matches[1]
}
