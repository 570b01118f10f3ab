package main

// MergedProducts produces the effective row set: edit patches applied to
// every row, local adds prepended when includeLocal, deleted rows
// filtered out last. includeLocal is false in search and sort modes
// where the remote list is the source of truth; deletions apply
// regardless.
//
// Edit patches keyed by ids absent from both slices are inert; they
// are never purged and grow with the length of the session.
func (o *overlayStore) MergedProducts(base []Product, includeLocal bool) []Product {
	applyPatch := func(product Product) Product {
		if patch, ok := o.edits[product.ID]; ok {
			return patch.apply(product)
		}
		return product
	}

	size := len(base)
	if includeLocal {
		size += len(o.added)
	}
	merged := make([]Product, 0, size)
	if includeLocal {
		for _, product := range o.added {
			merged = append(merged, applyPatch(product))
		}
	}
	for _, product := range base {
		merged = append(merged, applyPatch(product))
	}

	kept := merged[:0]
	for _, product := range merged {
		if !o.IsDeleted(product.ID) {
			kept = append(kept, product)
		}
	}
	return kept
}
