package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// remotePageStore holds the one server page the table is showing and
// the parameters that produced it. Fetches run as bubbletea commands;
// every request carries a sequence number and stale responses are
// dropped, so the newest request always wins.
type remotePageStore struct {
	api          *apiClient
	limit        int
	selectFields string

	query string
	page  int
	sort  *sortState

	rows   []Product
	total  int
	skip   int
	errMsg string

	loaded   bool
	fetching bool
	seq      int
}

type pageLoadedMsg struct {
	seq   int
	rows  []Product
	total int
	skip  int
	limit int
	err   error
}

func newRemotePageStore(api *apiClient, limit int) *remotePageStore {
	return &remotePageStore{
		api:          api,
		limit:        limit,
		selectFields: defaultSelectFields,
		page:         1,
	}
}

func (r *remotePageStore) SetParams(query string, page int, sort *sortState) {
	if page < 1 {
		page = 1
	}
	r.query = query
	r.page = page
	r.sort = sort
}

// FetchCmd issues a request for the current parameters.
func (r *remotePageStore) FetchCmd() tea.Cmd {
	r.seq++
	r.fetching = true
	seq := r.seq
	params := listParams{
		Query:  r.query,
		Limit:  r.limit,
		Skip:   (r.page - 1) * r.limit,
		Select: r.selectFields,
		Sort:   r.sort,
	}
	api := r.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := api.ListProducts(ctx, params)
		if err != nil {
			return pageLoadedMsg{seq: seq, err: err}
		}
		rows := make([]Product, 0, len(resp.Products))
		for _, dto := range resp.Products {
			rows = append(rows, mapProductDTO(dto))
		}
		return pageLoadedMsg{seq: seq, rows: rows, total: resp.Total, skip: resp.Skip, limit: resp.Limit}
	}
}

// Apply folds a response into the store. Responses from superseded
// requests report false and change nothing.
func (r *remotePageStore) Apply(msg pageLoadedMsg) bool {
	if msg.seq != r.seq {
		return false
	}
	r.fetching = false
	if msg.err != nil {
		r.errMsg = humanizeError(msg.err, "request failed")
		return true
	}
	r.errMsg = ""
	r.loaded = true
	r.rows = msg.rows
	r.total = msg.total
	r.skip = msg.skip
	return true
}

func (r *remotePageStore) Rows() []Product { return r.rows }
func (r *remotePageStore) Total() int      { return r.total }
func (r *remotePageStore) Limit() int      { return r.limit }
func (r *remotePageStore) Skip() int       { return (r.page - 1) * r.limit }
func (r *remotePageStore) Error() string   { return r.errMsg }

// IsLoading is the first load; IsFetching any in-flight revalidation.
func (r *remotePageStore) IsLoading() bool  { return r.fetching && !r.loaded }
func (r *remotePageStore) IsFetching() bool { return r.fetching }
