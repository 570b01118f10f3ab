package main

import (
	"net/url"
)

// The current table view travels as a query string: two parameters for
// the sort state, absent when the view is unsorted. The pre-rewrite
// client stored column widths in a "cols" parameter; it is actively
// stripped so stale saved views keep loading.
const (
	sortKeyParam       = "sort"
	sortDirParam       = "dir"
	legacyColumnsParam = "cols"
)

func parseSortParams(values url.Values) *sortState {
	key := values.Get(sortKeyParam)
	if !isProductColumnKey(key) {
		return nil
	}
	direction := sortAsc
	if sortDirection(values.Get(sortDirParam)) == sortDesc {
		direction = sortDesc
	}
	return &sortState{Key: key, Direction: direction}
}

func applySortParams(values url.Values, sort *sortState) url.Values {
	if sort != nil {
		values.Set(sortKeyParam, sort.Key)
		values.Set(sortDirParam, string(sort.Direction))
	} else {
		values.Del(sortKeyParam)
		values.Del(sortDirParam)
	}
	return values
}

// parseViewState decodes a saved view string. Unparseable input is
// treated as the default view.
func parseViewState(raw string) *sortState {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil
	}
	return parseSortParams(values)
}

// encodeViewState renders the canonical view string: sort parameters
// only, legacy parameters dropped.
func encodeViewState(sort *sortState) string {
	return applySortParams(url.Values{}, sort).Encode()
}

// stripLegacyParams removes parameters the client no longer understands
// from a raw view string, reporting whether anything changed.
func stripLegacyParams(raw string) (string, bool) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return raw, false
	}
	if !values.Has(legacyColumnsParam) {
		return raw, false
	}
	values.Del(legacyColumnsParam)
	return values.Encode(), true
}
