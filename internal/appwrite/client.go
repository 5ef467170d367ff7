package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client talks to an Appwrite server over its REST API. One client serves
// the databases, storage, and account services for a single project.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	project    string
	key        string
	databaseID string
	bucketID   string
	userAgent  string
}

const (
	defaultUserAgent = "reelgrid/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given endpoint and project. The endpoint
// is the API root including the version segment, e.g.
// "https://cloud.appwrite.io/v1".
func NewClient(endpoint, project, databaseID, bucketID string) (*Client, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(project) == "" {
		return nil, fmt.Errorf("project id is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		project:    project,
		databaseID: databaseID,
		bucketID:   bucketID,
		userAgent:  defaultUserAgent,
	}, nil
}

// SetKey attaches a server API key. Requests made with a key bypass the
// session scope; leave it empty for session-based (end user) access.
func (c *Client) SetKey(key string) {
	c.key = key
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Appwrite-Project", c.project)
	if c.key != "" {
		req.Header.Set("X-Appwrite-Key", c.key)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = strings.NewReader(string(raw))
	}
	return c.do(ctx, method, rel, body, "application/json", dest)
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// endpointURL builds a relative URL under the client's base path so that
// ResolveReference keeps the endpoint's version prefix intact.
func (c *Client) endpointURL(path string, query url.Values) *url.URL {
	rel := &url.URL{Path: c.baseURL.Path + path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	return rel
}
