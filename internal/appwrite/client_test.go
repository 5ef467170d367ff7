package appwrite

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/v1", "proj", "db", "bucket")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseEndpoint_NormalizesAndRequiresValue(t *testing.T) {
	u, err := parseEndpoint("cloud.example.com/v1/")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/v1" {
		t.Fatalf("path = %q, want /v1", u.Path)
	}

	if _, err := parseEndpoint("   "); err == nil {
		t.Fatalf("parseEndpoint returned nil error, want error for empty endpoint")
	}
}

func TestListDocuments_EncodesQueriesAndHeaders(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQueries []string
	var gotProject string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQueries = r.URL.Query()["queries[]"]
		gotProject = r.Header.Get("X-Appwrite-Project")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(DocumentList{
			Total:     1,
			Documents: []Document{{"$id": "abc", "reelTitle": "One"}},
		})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.ListDocuments(ctx, "reels", []string{
		QueryEqual("isPublished", true),
		QueryLimit(20),
		QueryOffset(40),
	})
	if err != nil {
		t.Fatalf("ListDocuments returned error: %v", err)
	}
	if list.Total != 1 || len(list.Documents) != 1 || list.Documents[0].ID() != "abc" {
		t.Fatalf("ListDocuments = %#v, want 1 document id=abc", list)
	}
	if gotPath != "/v1/databases/db/collections/reels/documents" {
		t.Fatalf("path = %q, want databases documents path", gotPath)
	}
	want := []string{`equal("isPublished", [true])`, "limit(20)", "offset(40)"}
	if len(gotQueries) != 3 || gotQueries[0] != want[0] || gotQueries[1] != want[1] || gotQueries[2] != want[2] {
		t.Fatalf("queries = %v, want %v", gotQueries, want)
	}
	if gotProject != "proj" {
		t.Fatalf("project header = %q, want proj", gotProject)
	}
}

func TestCreateAndUpdateDocument_Payloads(t *testing.T) {
	t.Parallel()

	var created map[string]any
	var patched map[string]any

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&created)
			_ = json.NewEncoder(w).Encode(Document{"$id": "new"})
		case http.MethodPatch:
			_ = json.NewDecoder(r.Body).Decode(&patched)
			_ = json.NewEncoder(w).Encode(Document{"$id": "abc", "likes": 5})
		default:
			http.NotFound(w, r)
		}
	}))

	doc, err := c.CreateDocument(context.Background(), "reels", map[string]any{"reelTitle": "New"})
	if err != nil {
		t.Fatalf("CreateDocument returned error: %v", err)
	}
	if doc.ID() != "new" {
		t.Fatalf("created id = %q, want new", doc.ID())
	}
	if id, _ := created["documentId"].(string); id == "" {
		t.Fatalf("create payload missing generated documentId: %#v", created)
	}
	data, _ := created["data"].(map[string]any)
	if data["reelTitle"] != "New" {
		t.Fatalf("create data = %#v, want reelTitle=New", data)
	}

	doc, err = c.UpdateDocument(context.Background(), "reels", "abc", map[string]any{"likes": 5})
	if err != nil {
		t.Fatalf("UpdateDocument returned error: %v", err)
	}
	if doc["likes"] != float64(5) {
		t.Fatalf("updated doc = %#v, want likes=5", doc)
	}
	data, _ = patched["data"].(map[string]any)
	if len(data) != 1 || data["likes"] != float64(5) {
		t.Fatalf("patch data = %#v, want only likes", data)
	}

	if _, err := c.UpdateDocument(context.Background(), "reels", "", nil); err == nil {
		t.Fatalf("UpdateDocument returned nil error, want error for empty id")
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/databases/db/collections/unauthorized/documents":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"no scope","code":401,"type":"general_unauthorized_scope"}`))
		case "/v1/databases/db/collections/missing/documents":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found","code":404,"type":"document_not_found"}`))
		case "/v1/databases/db/collections/conflict/documents":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"conflict","code":409,"type":"document_conflict"}`))
		case "/v1/databases/db/collections/garbled/documents":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("not json at all"))
		default:
			http.NotFound(w, r)
		}
	}))

	cases := []struct {
		collection string
		want       error
	}{
		{"unauthorized", ErrUnauthorized},
		{"missing", ErrNotFound},
		{"conflict", ErrConflict},
		{"garbled", ErrBadRequest},
	}
	for _, tc := range cases {
		_, err := c.ListDocuments(context.Background(), tc.collection, nil)
		if err == nil {
			t.Fatalf("ListDocuments(%s) returned nil error", tc.collection)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("ListDocuments(%s) error = %v, want errors.Is %v", tc.collection, err, tc.want)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("ListDocuments(%s) error = %T, want *APIError", tc.collection, err)
		}
	}
}

func TestUploadFile_MultipartAndViewURL(t *testing.T) {
	t.Parallel()

	var gotFileID string
	var gotName string
	var gotBytes []byte

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFileID = r.FormValue("fileId")
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotBytes, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(File{ID: gotFileID, Name: gotName})
	}))

	file, err := c.UploadFile(context.Background(), "thumb.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if file.ID == "" || file.ID != gotFileID {
		t.Fatalf("file id = %q (server saw %q), want generated id round-tripped", file.ID, gotFileID)
	}
	if gotName != "thumb.jpg" || string(gotBytes) != "jpegbytes" {
		t.Fatalf("server saw name=%q bytes=%q, want thumb.jpg/jpegbytes", gotName, gotBytes)
	}

	view := c.FileViewURL(file.ID)
	parsed, err := url.Parse(view)
	if err != nil {
		t.Fatalf("FileViewURL returned unparseable URL: %v", err)
	}
	if !strings.HasSuffix(parsed.Path, "/storage/buckets/bucket/files/"+file.ID+"/view") {
		t.Fatalf("view URL path = %q, want storage view path", parsed.Path)
	}
	if parsed.Query().Get("project") != "proj" {
		t.Fatalf("view URL project = %q, want proj", parsed.Query().Get("project"))
	}
}

func TestFileIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://api.example.com/v1/storage/buckets/b/files/abc123/view?project=p", "abc123"},
		{"https://api.example.com/v1/storage/buckets/b/files/abc123/preview", "abc123"},
		{"https://images.example.com/photo.jpg", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FileIDFromURL(tc.url); got != tc.want {
			t.Fatalf("FileIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestAccountSessionFlow(t *testing.T) {
	t.Parallel()

	sessions := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v1/account/sessions/email" && r.Method == http.MethodPost:
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["email"] != "ed@example.com" || creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"invalid credentials","code":401}`))
				return
			}
			sessions++
			http.SetCookie(w, &http.Cookie{Name: "a_session_proj", Value: "tok", Path: "/"})
			_ = json.NewEncoder(w).Encode(Session{ID: "sess", UserID: "u1"})
		case r.URL.Path == "/v1/account" && r.Method == http.MethodGet:
			if cookie, err := r.Cookie("a_session_proj"); err != nil || cookie.Value != "tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"missing session","code":401}`))
				return
			}
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "ed@example.com"})
		case r.URL.Path == "/v1/account/sessions/current" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	if _, err := c.CreateEmailSession(context.Background(), "ed@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("bad password error = %v, want ErrUnauthorized", err)
	}

	session, err := c.CreateEmailSession(context.Background(), "ed@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateEmailSession returned error: %v", err)
	}
	if session.UserID != "u1" || sessions != 1 {
		t.Fatalf("session = %#v (created %d), want userId=u1", session, sessions)
	}

	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if user.Email != "ed@example.com" {
		t.Fatalf("user = %#v, want ed@example.com", user)
	}

	if err := c.DeleteSession(context.Background()); err != nil {
		t.Fatalf("DeleteSession returned error: %v", err)
	}
}
