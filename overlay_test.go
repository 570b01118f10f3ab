package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct(id string) Product {
	return Product{
		ID:     id,
		Name:   "Widget " + id,
		Price:  12.5,
		Vendor: "Acme",
		SKU:    "SKU-" + id,
	}
}

func TestOverlay_DraftLifecycle(t *testing.T) {
	o := newOverlayStore()
	require.Nil(t, o.Draft())

	o.StartAdding()
	require.NotNil(t, o.Draft())

	o.UpdateDraft(fieldName, "Cable")
	// A repeated start must not wipe the half-typed draft.
	o.StartAdding()
	assert.Equal(t, "Cable", o.Draft().Name)

	o.CancelAdding()
	assert.Nil(t, o.Draft())
}

func TestOverlay_PrepareDraft(t *testing.T) {
	o := newOverlayStore()

	_, err := o.PrepareDraft()
	assert.Equal(t, errNotEditing, err)

	o.StartAdding()
	o.UpdateDraft(fieldName, "Cable")
	_, err = o.PrepareDraft()
	assert.Equal(t, errValidation, err)
	assert.Empty(t, o.DraftErrors()[fieldName])
	assert.Equal(t, errPriceRequired, o.DraftErrors()[fieldPrice])
	assert.Equal(t, errFieldRequired, o.DraftErrors()[fieldVendor])

	// Typing into a field clears its error, others stay.
	o.UpdateDraft(fieldPrice, "9,90")
	assert.Empty(t, o.DraftErrors()[fieldPrice])
	assert.Equal(t, errFieldRequired, o.DraftErrors()[fieldVendor])

	o.UpdateDraft(fieldVendor, " Acme ")
	o.UpdateDraft(fieldSKU, "C-1")
	payload, err := o.PrepareDraft()
	require.NoError(t, err)
	assert.Equal(t, draftPayload{Name: "Cable", Price: 9.9, Vendor: "Acme", SKU: "C-1"}, payload)
	// Prepare leaves the draft open until the row is confirmed.
	assert.NotNil(t, o.Draft())

	o.AppendProduct(Product{ID: "101", Name: "Cable", Price: 9.9, Vendor: "Acme", SKU: "C-1"})
	assert.Nil(t, o.Draft())
	require.Len(t, o.added, 1)
}

func TestOverlay_AppendProductPrepends(t *testing.T) {
	o := newOverlayStore()
	o.AppendProduct(sampleProduct("a"))
	o.AppendProduct(sampleProduct("b"))
	require.Len(t, o.added, 2)
	assert.Equal(t, "b", o.added[0].ID)
	assert.Equal(t, "a", o.added[1].ID)
}

func TestOverlay_StartEditingSeedsDraft(t *testing.T) {
	o := newOverlayStore()
	o.StartEditing(Product{ID: "7", Name: "Mouse", Price: 24.9, Vendor: "Logi", SKU: "M-7"})

	require.NotNil(t, o.Editing())
	assert.Equal(t, "7", o.EditingID())
	assert.Equal(t, "24.9", o.Editing().draft.Price)
	assert.False(t, o.IsEditingDirty())
}

func TestOverlay_IsEditingDirty(t *testing.T) {
	o := newOverlayStore()
	assert.False(t, o.IsEditingDirty())

	o.StartEditing(sampleProduct("7"))
	o.UpdateEditingDraft(fieldName, "Widget 7!")
	assert.True(t, o.IsEditingDirty())

	o.UpdateEditingDraft(fieldName, "Widget 7")
	assert.False(t, o.IsEditingDirty())

	// An equivalent price spelling is not a change.
	o.UpdateEditingDraft(fieldPrice, "12,50")
	assert.False(t, o.IsEditingDirty())
}

func TestOverlay_PrepareEditingComputesPatch(t *testing.T) {
	o := newOverlayStore()

	_, err := o.PrepareEditing()
	assert.Equal(t, errNotEditing, err)

	o.StartEditing(sampleProduct("7"))
	o.UpdateEditingDraft(fieldName, "")
	_, err = o.PrepareEditing()
	assert.Equal(t, errValidation, err)
	assert.Equal(t, errFieldRequired, o.EditErrors()[fieldName])

	o.UpdateEditingDraft(fieldName, "Renamed")
	o.UpdateEditingDraft(fieldPrice, "99,95")
	prepared, err := o.PrepareEditing()
	require.NoError(t, err)
	assert.Equal(t, "7", prepared.ID)
	require.NotNil(t, prepared.Changes.Name)
	assert.Equal(t, "Renamed", *prepared.Changes.Name)
	require.NotNil(t, prepared.Changes.Price)
	assert.Equal(t, 99.95, *prepared.Changes.Price)
	assert.Nil(t, prepared.Changes.Vendor)
	assert.Nil(t, prepared.Changes.SKU)
}

func TestOverlay_PrepareEditingNoChanges(t *testing.T) {
	o := newOverlayStore()
	o.StartEditing(sampleProduct("7"))
	prepared, err := o.PrepareEditing()
	require.NoError(t, err)
	assert.True(t, prepared.Changes.isEmpty())
}

func TestOverlay_ApplyRowEditsMerges(t *testing.T) {
	o := newOverlayStore()
	name := "First"
	o.ApplyRowEdits("7", productPatch{Name: &name})
	price := 5.5
	o.ApplyRowEdits("7", productPatch{Price: &price})

	patch := o.edits["7"]
	require.NotNil(t, patch.Name)
	assert.Equal(t, "First", *patch.Name)
	require.NotNil(t, patch.Price)
	assert.Equal(t, 5.5, *patch.Price)
}

func TestOverlay_RemoveProductScrubsState(t *testing.T) {
	o := newOverlayStore()
	o.ToggleSelect("7")
	o.ToggleSelect("8")
	name := "x"
	o.ApplyRowEdits("7", productPatch{Name: &name})
	o.StartEditing(sampleProduct("7"))

	o.RemoveProduct("7")

	assert.True(t, o.IsDeleted("7"))
	assert.False(t, o.IsSelected("7"))
	assert.True(t, o.IsSelected("8"))
	_, hasEdit := o.edits["7"]
	assert.False(t, hasEdit)
	assert.Nil(t, o.Editing())
}

func TestOverlay_RemoveProductKeepsOtherSession(t *testing.T) {
	o := newOverlayStore()
	o.StartEditing(sampleProduct("9"))
	o.RemoveProduct("7")
	assert.Equal(t, "9", o.EditingID())
}

func TestOverlay_ToggleSelect(t *testing.T) {
	o := newOverlayStore()
	o.ToggleSelect("1")
	assert.True(t, o.IsSelected("1"))
	o.ToggleSelect("1")
	assert.False(t, o.IsSelected("1"))
}

func TestOverlay_ToggleSelectAll(t *testing.T) {
	o := newOverlayStore()
	ids := []string{"1", "2", "3"}

	// Partial selection completes rather than clearing.
	o.ToggleSelect("2")
	o.ToggleSelectAll(ids)
	for _, id := range ids {
		assert.True(t, o.IsSelected(id), id)
	}

	// Full selection toggles off, leaving off-page ids alone.
	o.ToggleSelect("off-page")
	o.ToggleSelectAll(ids)
	for _, id := range ids {
		assert.False(t, o.IsSelected(id), id)
	}
	assert.True(t, o.IsSelected("off-page"))
}

func TestMergedProducts(t *testing.T) {
	o := newOverlayStore()
	base := []Product{sampleProduct("1"), sampleProduct("2"), sampleProduct("3")}

	o.AppendProduct(sampleProduct("local-x"))
	name := "Patched"
	o.ApplyRowEdits("2", productPatch{Name: &name})
	o.RemoveProduct("3")

	merged := o.MergedProducts(base, true)
	require.Len(t, merged, 3)
	assert.Equal(t, "local-x", merged[0].ID)
	assert.Equal(t, "1", merged[1].ID)
	assert.Equal(t, "Patched", merged[2].Name)

	// Search/sort views exclude local adds but still honor deletions
	// and patches.
	merged = o.MergedProducts(base, false)
	require.Len(t, merged, 2)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "Patched", merged[1].Name)
}

func TestMergedProducts_PatchAppliesToLocalAdds(t *testing.T) {
	o := newOverlayStore()
	o.AppendProduct(sampleProduct("local-x"))
	name := "Edited local"
	o.ApplyRowEdits("local-x", productPatch{Name: &name})

	merged := o.MergedProducts(nil, true)
	require.Len(t, merged, 1)
	assert.Equal(t, "Edited local", merged[0].Name)
}

func TestMergedProducts_DeletedLocalAdd(t *testing.T) {
	o := newOverlayStore()
	o.AppendProduct(sampleProduct("local-x"))
	o.RemoveProduct("local-x")
	assert.Empty(t, o.MergedProducts(nil, true))
}
