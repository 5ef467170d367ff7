package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Document is a raw database record. Attribute names are whatever the
// collection schema defines; system attributes are prefixed with "$".
type Document map[string]any

// ID returns the document's system identifier, or "" when absent.
func (d Document) ID() string {
	if v, ok := d["$id"].(string); ok {
		return v
	}
	return ""
}

// DocumentList mirrors the listDocuments response envelope.
type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

// Query builders in the server's string syntax, e.g. `equal("a", [true])`.

// QueryEqual matches documents whose attribute equals the given value.
func QueryEqual(attribute string, value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = []byte("null")
	}
	return fmt.Sprintf("equal(%q, [%s])", attribute, raw)
}

// QueryLimit caps the number of returned documents.
func QueryLimit(n int) string {
	return fmt.Sprintf("limit(%d)", n)
}

// QueryOffset skips the first n matching documents.
func QueryOffset(n int) string {
	return fmt.Sprintf("offset(%d)", n)
}

// ListDocuments fetches a page of documents from a collection.
func (c *Client) ListDocuments(ctx context.Context, collectionID string, queries []string) (DocumentList, error) {
	values := url.Values{}
	for _, q := range queries {
		values.Add("queries[]", q)
	}
	rel := c.endpointURL(fmt.Sprintf("/databases/%s/collections/%s/documents", c.databaseID, collectionID), values)

	var list DocumentList
	if err := c.do(ctx, "GET", rel, nil, "", &list); err != nil {
		return DocumentList{}, err
	}
	return list, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, collectionID, documentID string) (Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	rel := c.endpointURL(fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.databaseID, collectionID, documentID), nil)

	var doc Document
	if err := c.do(ctx, "GET", rel, nil, "", &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateDocument inserts a document with a client-generated unique id and
// returns the stored record.
func (c *Client) CreateDocument(ctx context.Context, collectionID string, data map[string]any) (Document, error) {
	rel := c.endpointURL(fmt.Sprintf("/databases/%s/collections/%s/documents", c.databaseID, collectionID), nil)

	payload := map[string]any{
		"documentId": uuid.NewString(),
		"data":       data,
	}
	var doc Document
	if err := c.doJSON(ctx, "POST", rel, payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateDocument patches only the attributes present in data and returns
// the updated record.
func (c *Client) UpdateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	rel := c.endpointURL(fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.databaseID, collectionID, documentID), nil)

	payload := map[string]any{"data": data}
	var doc Document
	if err := c.doJSON(ctx, "PATCH", rel, payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}
	rel := c.endpointURL(fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.databaseID, collectionID, documentID), nil)
	return c.do(ctx, "DELETE", rel, nil, "", nil)
}
