package main

import (
	"context"
	"sync"
)

// cmdResult is what every controller command resolves to. Err holds
// either a state token ("validation", "not-editing") or a transport
// message; nothing escapes the command boundary as a panic or raw
// error.
type cmdResult struct {
	OK  bool
	Err string
}

func okResult() cmdResult               { return cmdResult{OK: true} }
func failResult(token string) cmdResult { return cmdResult{Err: token} }

const (
	resultValidation = "validation"
	resultNotEditing = "not-editing"
)

// controller orchestrates the overlay store, the remote page store and
// the API. Pure state commands run on the UI goroutine; the three
// persistence commands block on the network inside bubbletea commands,
// so overlay access is serialized with a mutex. Page fetches stay
// outside the lock entirely (the remote store sequences them itself).
type controller struct {
	mu      sync.Mutex
	api     *apiClient
	overlay *overlayStore
	remote  *remotePageStore
	store   *clientStore

	query          string // live input
	committedQuery string // debounced value the remote store sees
	page           int
	sort           *sortState
}

func newController(api *apiClient, remote *remotePageStore, store *clientStore) *controller {
	c := &controller{
		api:     api,
		overlay: newOverlayStore(),
		remote:  remote,
		store:   store,
		page:    1,
	}
	c.restoreViewState()
	return c
}

// restoreViewState loads the saved sort parameters, dropping legacy
// parameters from old clients on the way.
func (c *controller) restoreViewState() {
	var raw string
	ok, err := c.store.Get(viewStateKey, &raw)
	if err != nil || !ok {
		return
	}
	if stripped, changed := stripLegacyParams(raw); changed {
		raw = stripped
		_ = c.store.Set(viewStateKey, raw)
	}
	c.sort = parseViewState(raw)
}

func (c *controller) persistViewState() {
	_ = c.store.Set(viewStateKey, encodeViewState(c.sort))
}

// SetQuery records the live search input and resets to the first page.
// The remote store only sees the value once the debounce commits it.
func (c *controller) SetQuery(text string) {
	c.query = text
	c.page = 1
}

// CommitQuery applies the debounced search text; the caller refetches.
func (c *controller) CommitQuery(text string) {
	c.committedQuery = text
	c.syncRemote()
}

func (c *controller) Query() string          { return c.query }
func (c *controller) CommittedQuery() string { return c.committedQuery }
func (c *controller) Page() int              { return c.page }
func (c *controller) Sort() *sortState       { return c.sort }

func (c *controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.page = page
	c.syncRemote()
}

// ToggleSort cycles unsorted -> asc -> desc -> unsorted for the column,
// resets to page 1 and mirrors the result into the saved view
// parameters.
func (c *controller) ToggleSort(key string) {
	if !isProductColumnKey(key) {
		return
	}
	c.page = 1
	switch {
	case c.sort == nil || c.sort.Key != key:
		c.sort = &sortState{Key: key, Direction: sortAsc}
	case c.sort.Direction == sortAsc:
		c.sort = &sortState{Key: key, Direction: sortDesc}
	default:
		c.sort = nil
	}
	c.persistViewState()
	c.syncRemote()
}

func (c *controller) syncRemote() {
	c.remote.SetParams(c.committedQuery, c.page, c.sort)
}

// IncludeLocal reports whether local unsaved additions belong in the
// view: only on the default unsorted, unfiltered listing, where their
// position is meaningful.
func (c *controller) IncludeLocal() bool {
	return c.committedQuery == "" && c.sort == nil
}

// Rows is the merged, display-ready row set.
func (c *controller) Rows() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.MergedProducts(c.remote.Rows(), c.IncludeLocal())
}

func (c *controller) TotalPages() int {
	total, limit := c.remote.Total(), c.remote.Limit()
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageOverflow reports that a fresh total leaves the current page past
// the end; the UI schedules a deferred clamp to TotalPages.
func (c *controller) PageOverflow() bool {
	return c.remote.loaded && c.page > c.TotalPages()
}

// SaveDraft validates the draft, persists it, and only then appends the
// created row to the local adds. A transport failure leaves the draft
// and overlay exactly as they were.
func (c *controller) SaveDraft(ctx context.Context) cmdResult {
	c.mu.Lock()
	payload, err := c.overlay.PrepareDraft()
	c.mu.Unlock()
	if err != nil {
		return failResult(resultValidation)
	}
	dto, err := c.api.CreateProduct(ctx, payload)
	if err != nil {
		return failResult(humanizeError(err, "could not add the product"))
	}
	product := mapProductDTO(dto)
	c.mu.Lock()
	c.overlay.AppendProduct(product)
	c.mu.Unlock()
	return okResult()
}

// SaveEditingRow validates the session and computes the change patch.
// No changes: the session just closes. Remote-origin rows persist the
// patch first and the whole command fails (session open, overlay
// untouched) if that call fails. Local-origin rows apply directly.
func (c *controller) SaveEditingRow(ctx context.Context) cmdResult {
	c.mu.Lock()
	prepared, err := c.overlay.PrepareEditing()
	c.mu.Unlock()
	if err == errNotEditing {
		return failResult(resultNotEditing)
	}
	if err != nil {
		return failResult(resultValidation)
	}
	if prepared.Changes.isEmpty() {
		c.mu.Lock()
		c.overlay.CancelEditing()
		c.mu.Unlock()
		return okResult()
	}
	if !isLocalID(prepared.ID) {
		if _, err := c.api.UpdateProduct(ctx, prepared.ID, prepared.Changes); err != nil {
			return failResult(humanizeError(err, "could not save the changes"))
		}
	}
	c.mu.Lock()
	c.overlay.ApplyRowEdits(prepared.ID, prepared.Changes)
	c.overlay.CancelEditing()
	c.mu.Unlock()
	return okResult()
}

// DeleteRow deletes remotely first for server-origin rows; the row only
// leaves the view once the server has confirmed. Local rows vanish
// immediately.
func (c *controller) DeleteRow(ctx context.Context, id string) cmdResult {
	if !isLocalID(id) {
		if err := c.api.DeleteProduct(ctx, id); err != nil {
			return failResult(humanizeError(err, "could not delete the product"))
		}
	}
	c.mu.Lock()
	c.overlay.RemoveProduct(id)
	c.mu.Unlock()
	return okResult()
}

// Overlay pass-throughs for the UI goroutine, serialized with the
// persistence commands above.

func (c *controller) StartAdding() {
	c.mu.Lock()
	c.overlay.StartAdding()
	c.mu.Unlock()
}

func (c *controller) CancelAdding() {
	c.mu.Lock()
	c.overlay.CancelAdding()
	c.mu.Unlock()
}

func (c *controller) Adding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.Draft() != nil
}

func (c *controller) DraftValue(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d := c.overlay.Draft(); d != nil {
		return d.field(field)
	}
	return ""
}

func (c *controller) DraftError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.DraftErrors()[field]
}

func (c *controller) UpdateDraft(field, value string) {
	c.mu.Lock()
	c.overlay.UpdateDraft(field, value)
	c.mu.Unlock()
}

func (c *controller) StartEditing(product Product) {
	c.mu.Lock()
	c.overlay.StartEditing(product)
	c.mu.Unlock()
}

func (c *controller) UpdateEditingDraft(field, value string) {
	c.mu.Lock()
	c.overlay.UpdateEditingDraft(field, value)
	c.mu.Unlock()
}

func (c *controller) CancelEditing() {
	c.mu.Lock()
	c.overlay.CancelEditing()
	c.mu.Unlock()
}

func (c *controller) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.EditingID()
}

func (c *controller) EditingValue(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.overlay.Editing(); s != nil {
		return s.draft.field(field)
	}
	return ""
}

func (c *controller) EditError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.EditErrors()[field]
}

func (c *controller) IsEditingDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.IsEditingDirty()
}

func (c *controller) ToggleSelect(id string) {
	c.mu.Lock()
	c.overlay.ToggleSelect(id)
	c.mu.Unlock()
}

func (c *controller) ToggleSelectAll(ids []string) {
	c.mu.Lock()
	c.overlay.ToggleSelectAll(ids)
	c.mu.Unlock()
}

func (c *controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.IsSelected(id)
}

func (c *controller) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.overlay.SelectedIDs())
}
