package main

import (
	"errors"
	"strconv"
	"strings"
)

// State error tokens returned by overlay operations. Validation keeps
// the draft or session open with per-field messages; not-editing means
// there was nothing to save.
var (
	errNotEditing = errors.New("not-editing")
	errValidation = errors.New("validation")
)

type editSession struct {
	id       string
	draft    productDraft
	original Product
}

type preparedEdit struct {
	ID         string
	Changes    productPatch
	Normalized draftPayload
}

// overlayStore holds every piece of client-only state layered over the
// remote page: optimistic adds, per-row edit patches, deletions, the new
// row draft, the active edit session and the selection.
type overlayStore struct {
	added       []Product
	edits       map[string]productPatch
	deletedIDs  map[string]struct{}
	draft       *productDraft
	draftErrors map[string]string
	editing     *editSession
	editErrors  map[string]string
	selected    []string
}

func newOverlayStore() *overlayStore {
	return &overlayStore{
		edits:       make(map[string]productPatch),
		deletedIDs:  make(map[string]struct{}),
		draftErrors: make(map[string]string),
		editErrors:  make(map[string]string),
	}
}

// StartAdding opens an empty draft. Idempotent: an active draft is kept
// as-is so half-typed input survives a repeated "add" press.
func (o *overlayStore) StartAdding() {
	if o.draft == nil {
		o.draft = &productDraft{}
	}
	o.draftErrors = make(map[string]string)
}

func (o *overlayStore) CancelAdding() {
	o.draft = nil
	o.draftErrors = make(map[string]string)
}

func (o *overlayStore) Draft() *productDraft {
	return o.draft
}

func (o *overlayStore) DraftErrors() map[string]string {
	return o.draftErrors
}

func (o *overlayStore) UpdateDraft(field, value string) {
	if o.draft == nil {
		return
	}
	o.draft.setField(field, value)
	delete(o.draftErrors, field)
}

// PrepareDraft validates the active draft. On success it returns the
// normalized payload and leaves the draft open; the caller appends the
// row only after the server has accepted it.
func (o *overlayStore) PrepareDraft() (draftPayload, error) {
	if o.draft == nil {
		return draftPayload{}, errNotEditing
	}
	errs := validateDraft(*o.draft)
	o.draftErrors = errs
	if len(errs) > 0 {
		return draftPayload{}, errValidation
	}
	return draftPayload{
		Name:   strings.TrimSpace(o.draft.Name),
		Price:  parsePrice(o.draft.Price),
		Vendor: strings.TrimSpace(o.draft.Vendor),
		SKU:    strings.TrimSpace(o.draft.SKU),
	}, nil
}

// AppendProduct prepends a persisted row to the local adds and closes
// the draft.
func (o *overlayStore) AppendProduct(product Product) {
	o.added = append([]Product{product}, o.added...)
	o.draft = nil
	o.draftErrors = make(map[string]string)
}

// StartEditing seeds a session from the given row. It does not guard
// against an existing session; the caller sequences sessions (dirty
// confirmation lives at the UI layer).
func (o *overlayStore) StartEditing(product Product) {
	o.editing = &editSession{
		id: product.ID,
		draft: productDraft{
			Name:   product.Name,
			Vendor: product.Vendor,
			SKU:    product.SKU,
			Price:  strconv.FormatFloat(product.Price, 'f', -1, 64),
		},
		original: product,
	}
	o.editErrors = make(map[string]string)
}

func (o *overlayStore) Editing() *editSession {
	return o.editing
}

func (o *overlayStore) EditingID() string {
	if o.editing == nil {
		return ""
	}
	return o.editing.id
}

func (o *overlayStore) EditErrors() map[string]string {
	return o.editErrors
}

func (o *overlayStore) UpdateEditingDraft(field, value string) {
	if o.editing == nil {
		return
	}
	o.editing.draft.setField(field, value)
	delete(o.editErrors, field)
}

// IsEditingDirty reports whether the session's draft differs from its
// original snapshot.
func (o *overlayStore) IsEditingDirty() bool {
	if o.editing == nil {
		return false
	}
	draft, original := o.editing.draft, o.editing.original
	return strings.TrimSpace(draft.Name) != original.Name ||
		strings.TrimSpace(draft.Vendor) != original.Vendor ||
		strings.TrimSpace(draft.SKU) != original.SKU ||
		parsePrice(draft.Price) != original.Price
}

// PrepareEditing validates the active session and computes the patch of
// fields whose normalized value differs from the original.
func (o *overlayStore) PrepareEditing() (preparedEdit, error) {
	if o.editing == nil {
		return preparedEdit{}, errNotEditing
	}
	errs := validateDraft(o.editing.draft)
	o.editErrors = errs
	if len(errs) > 0 {
		return preparedEdit{}, errValidation
	}
	normalized := draftPayload{
		Name:   strings.TrimSpace(o.editing.draft.Name),
		Vendor: strings.TrimSpace(o.editing.draft.Vendor),
		SKU:    strings.TrimSpace(o.editing.draft.SKU),
		Price:  parsePrice(o.editing.draft.Price),
	}
	original := o.editing.original
	var changes productPatch
	if normalized.Name != original.Name {
		name := normalized.Name
		changes.Name = &name
	}
	if normalized.Vendor != original.Vendor {
		vendor := normalized.Vendor
		changes.Vendor = &vendor
	}
	if normalized.SKU != original.SKU {
		sku := normalized.SKU
		changes.SKU = &sku
	}
	if normalized.Price != original.Price {
		price := normalized.Price
		changes.Price = &price
	}
	return preparedEdit{ID: o.editing.id, Changes: changes, Normalized: normalized}, nil
}

// ApplyRowEdits merges a patch into any prior patch for the row.
func (o *overlayStore) ApplyRowEdits(id string, changes productPatch) {
	o.edits[id] = o.edits[id].merge(changes)
}

func (o *overlayStore) CancelEditing() {
	o.editing = nil
	o.editErrors = make(map[string]string)
}

// RemoveProduct marks the row deleted and scrubs every piece of state
// that referenced it.
func (o *overlayStore) RemoveProduct(id string) {
	o.deletedIDs[id] = struct{}{}
	for i, selected := range o.selected {
		if selected == id {
			o.selected = append(o.selected[:i], o.selected[i+1:]...)
			break
		}
	}
	delete(o.edits, id)
	if o.editing != nil && o.editing.id == id {
		o.CancelEditing()
	}
}

func (o *overlayStore) IsDeleted(id string) bool {
	_, ok := o.deletedIDs[id]
	return ok
}

func (o *overlayStore) SelectedIDs() []string {
	return o.selected
}

func (o *overlayStore) IsSelected(id string) bool {
	for _, selected := range o.selected {
		if selected == id {
			return true
		}
	}
	return false
}

func (o *overlayStore) ToggleSelect(id string) {
	for i, selected := range o.selected {
		if selected == id {
			o.selected = append(o.selected[:i], o.selected[i+1:]...)
			return
		}
	}
	o.selected = append(o.selected, id)
}

// ToggleSelectAll is itself a toggle: when every given id is already
// selected they are all deselected, otherwise the missing ones are
// selected. A partial selection therefore always completes, never
// empties.
func (o *overlayStore) ToggleSelectAll(ids []string) {
	current := make(map[string]struct{}, len(o.selected))
	for _, id := range o.selected {
		current[id] = struct{}{}
	}
	allSelected := true
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			allSelected = false
			break
		}
	}
	if allSelected {
		drop := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		kept := o.selected[:0]
		for _, id := range o.selected {
			if _, ok := drop[id]; !ok {
				kept = append(kept, id)
			}
		}
		o.selected = kept
		return
	}
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			o.selected = append(o.selected, id)
			current[id] = struct{}{}
		}
	}
}
