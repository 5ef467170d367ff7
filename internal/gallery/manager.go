package gallery

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/appwrite"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// Store is the slice of the backend client the manager consumes.
type Store interface {
	ListDocuments(ctx context.Context, collectionID string, queries []string) (appwrite.DocumentList, error)
	GetDocument(ctx context.Context, collectionID, documentID string) (appwrite.Document, error)
	UpdateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (appwrite.Document, error)
	DeleteDocument(ctx context.Context, collectionID, documentID string) error
	DeleteFile(ctx context.Context, fileID string) error
}

// DefaultPageSize is the page length requested from the backend.
const DefaultPageSize = 20

// Snapshot is the manager state handed to the UI. Items are cloned; the
// caller may mutate the slice freely.
type Snapshot struct {
	Items       []reel.Item
	Offset      int
	HasMore     bool
	LastError   error
	LastUpdated time.Time
}

// Manager is the single source of truth for the in-memory gallery
// collection and its pagination cursor. All mutation goes through its
// operations; the UI only ever reads cloned snapshots.
//
// Operations that call the network must not overlap: the manager does not
// defend against two concurrent LoadMore calls racing on the cursor, so
// integrations disable the trigger while a request is in flight.
type Manager struct {
	store      Store
	collection string
	pageSize   int
	category   string
	log        *zap.Logger

	mu      sync.Mutex
	items   []reel.Item
	offset  int
	hasMore bool
	lastErr error
	updated time.Time
}

// NewManager builds a Manager over one collection. A pageSize of zero or
// less uses DefaultPageSize; a nil logger is replaced with a no-op one.
func NewManager(store Store, collectionID string, pageSize int, log *zap.Logger) *Manager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		store:      store,
		collection: collectionID,
		pageSize:   pageSize,
		log:        log,
	}
}

// SetCategory restricts subsequent loads to one category; an empty value
// clears the filter. It takes effect on the next LoadInitial.
func (m *Manager) SetCategory(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.category = category
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Items:       cloneItems(m.items),
		Offset:      m.offset,
		HasMore:     m.hasMore,
		LastError:   m.lastErr,
		LastUpdated: m.updated,
	}
}

// LoadInitial fetches the first page of published items and replaces the
// collection. When the filtered query fails it retries once without the
// server-side filter and filters client-side; when that also fails the
// manager settles to an empty collection with no further pages and returns
// a *FetchError for the banner.
func (m *Manager) LoadInitial(ctx context.Context) error {
	page, err := m.fetchPublished(ctx, 0)
	if err != nil {
		m.log.Warn("initial gallery load failed", zap.Error(err))
		m.mu.Lock()
		m.items = nil
		m.offset = 0
		m.hasMore = false
		m.lastErr = err
		m.updated = time.Now()
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	for _, item := range page {
		m.appendLocked(item)
	}
	m.offset = len(page)
	m.hasMore = len(page) == m.pageSize
	m.lastErr = nil
	m.updated = time.Now()
	return nil
}

// LoadMore fetches and appends the next page. It is a no-op before the
// initial load and after the collection is exhausted. Records whose id is
// already present update the existing item in place instead of appending.
func (m *Manager) LoadMore(ctx context.Context) error {
	m.mu.Lock()
	if !m.hasMore || m.offset == 0 {
		m.mu.Unlock()
		return nil
	}
	offset := m.offset
	m.mu.Unlock()

	page, err := m.fetchPublished(ctx, offset)
	if err != nil {
		m.log.Warn("load more failed", zap.Error(err), zap.Int("offset", offset))
		m.mu.Lock()
		m.lastErr = err
		m.updated = time.Now()
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(page) == 0 {
		m.hasMore = false
		m.lastErr = nil
		m.updated = time.Now()
		return nil
	}
	for _, item := range page {
		m.appendLocked(item)
	}
	// Advance by the count actually returned so the cursor never runs
	// past the true end of the collection.
	m.offset = offset + len(page)
	m.hasMore = len(page) == m.pageSize
	m.lastErr = nil
	m.updated = time.Now()
	return nil
}

// RefreshVisible refetches every page loaded so far and merges the
// results in place, so counters and titles drift toward the backend
// without disturbing pagination or aspect assignments. A no-op before
// the initial load.
func (m *Manager) RefreshVisible(ctx context.Context) error {
	m.mu.Lock()
	loaded := m.offset
	m.mu.Unlock()
	if loaded == 0 {
		return nil
	}

	for offset := 0; offset < loaded; offset += m.pageSize {
		page, err := m.fetchPublished(ctx, offset)
		if err != nil {
			m.log.Warn("visible refresh failed", zap.Error(err), zap.Int("offset", offset))
			m.mu.Lock()
			m.lastErr = err
			m.updated = time.Now()
			m.mu.Unlock()
			return err
		}
		m.mu.Lock()
		for _, item := range page {
			m.appendLocked(item)
		}
		m.lastErr = nil
		m.updated = time.Now()
		m.mu.Unlock()
		if len(page) < m.pageSize {
			break
		}
	}
	return nil
}

// Reload refetches one document and merges it into the local collection,
// so an edit overlay opens against the freshest record instead of a
// possibly stale page.
func (m *Manager) Reload(ctx context.Context, id string) (reel.Item, error) {
	if id == "" {
		return reel.Item{}, ErrInvalidArgument
	}
	doc, err := m.store.GetDocument(ctx, m.collection, id)
	if err != nil {
		return reel.Item{}, &FetchError{Err: err}
	}
	item, ok := reel.Normalize(map[string]any(doc))
	if !ok {
		item, _ = reel.Normalize(withID(doc, id))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			item.DisplayAspect = m.items[i].DisplayAspect
			m.items[i] = item
			break
		}
	}
	m.updated = time.Now()
	return item, nil
}

// Patch carries the editable fields. Nil means "leave unchanged"; only
// non-nil fields are sent to the backend.
type Patch struct {
	Title       *string
	Description *string
	Likes       *int
	Views       *int
}

func (p Patch) payload() map[string]any {
	data := map[string]any{}
	if p.Title != nil {
		data["reelTitle"] = clip(*p.Title, 256)
	}
	if p.Description != nil {
		data["description"] = clip(*p.Description, 1024)
	}
	if p.Likes != nil {
		data["likes"] = max(*p.Likes, 0)
	}
	if p.Views != nil {
		data["views"] = max(*p.Views, 0)
	}
	return data
}

// ApplyEdit sends only the changed fields to the backend and, on success,
// merges the confirmed record into the local item. Local state is never
// touched before the backend confirms.
func (m *Manager) ApplyEdit(ctx context.Context, id string, patch Patch) (reel.Item, error) {
	if id == "" {
		return reel.Item{}, ErrInvalidArgument
	}
	data := patch.payload()
	if len(data) == 0 {
		return reel.Item{}, ErrInvalidArgument
	}

	doc, err := m.store.UpdateDocument(ctx, m.collection, id, data)
	if err != nil {
		return reel.Item{}, &UpdateError{Err: err}
	}
	confirmed, ok := reel.Normalize(map[string]any(doc))
	if !ok {
		// The backend echoes the id it was given; a response without one
		// still confirms the write, so fall back to the request id.
		confirmed, _ = reel.Normalize(withID(doc, id))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == confirmed.ID {
			confirmed.DisplayAspect = m.items[i].DisplayAspect
			m.items[i] = confirmed
			break
		}
	}
	m.updated = time.Now()
	return confirmed, nil
}

// ApplyDelete removes an item remotely, then locally. Deleting the stored
// thumbnail asset is best-effort: a failure there is logged as a warning
// and never rolls back the item removal.
func (m *Manager) ApplyDelete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}

	m.mu.Lock()
	var thumbnail string
	for i := range m.items {
		if m.items[i].ID == id {
			thumbnail = m.items[i].ThumbnailURL
			break
		}
	}
	m.mu.Unlock()

	if err := m.store.DeleteDocument(ctx, m.collection, id); err != nil {
		return &DeleteError{Err: err}
	}

	m.mu.Lock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.updated = time.Now()
	m.mu.Unlock()

	if fileID := appwrite.FileIDFromURL(thumbnail); fileID != "" {
		if err := m.store.DeleteFile(ctx, fileID); err != nil {
			m.log.Warn("thumbnail cleanup failed", zap.String("fileId", fileID), zap.Error(err))
		}
	}
	return nil
}

// fetchPublished runs the filtered page query with the unfiltered fallback.
func (m *Manager) fetchPublished(ctx context.Context, offset int) ([]reel.Item, error) {
	m.mu.Lock()
	category := m.category
	m.mu.Unlock()

	queries := []string{appwrite.QueryEqual("isPublished", true)}
	if category != "" {
		queries = append(queries, appwrite.QueryEqual("category", category))
	}
	queries = append(queries, appwrite.QueryLimit(m.pageSize), appwrite.QueryOffset(offset))
	list, err := m.store.ListDocuments(ctx, m.collection, queries)
	if err == nil {
		return normalizeList(list), nil
	}
	m.log.Warn("filtered listing failed, retrying without filter", zap.Error(err))

	fallback := []string{
		appwrite.QueryLimit(m.pageSize),
		appwrite.QueryOffset(offset),
	}
	list, fbErr := m.store.ListDocuments(ctx, m.collection, fallback)
	if fbErr != nil {
		return nil, &FetchError{Err: err}
	}
	items := normalizeList(list)
	published := items[:0]
	for _, item := range items {
		if !item.IsPublished {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		published = append(published, item)
	}
	return published, nil
}

// appendLocked inserts or updates one item. New items receive their stable
// display aspect here, at first appearance; updates keep the existing one.
func (m *Manager) appendLocked(item reel.Item) {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			item.DisplayAspect = m.items[i].DisplayAspect
			m.items[i] = item
			return
		}
	}
	item.DisplayAspect = aspectFor(len(m.items))
	m.items = append(m.items, item)
}

func normalizeList(list appwrite.DocumentList) []reel.Item {
	raws := make([]map[string]any, len(list.Documents))
	for i, doc := range list.Documents {
		raws[i] = map[string]any(doc)
	}
	return reel.NormalizeAll(raws)
}

func withID(doc appwrite.Document, id string) map[string]any {
	raw := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		raw[k] = v
	}
	raw["$id"] = id
	return raw
}

func cloneItems(items []reel.Item) []reel.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]reel.Item, len(items))
	copy(dup, items)
	return dup
}

// clip truncates by runes so a multi-byte character at the boundary is
// dropped whole rather than split into invalid UTF-8.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
