package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotePageStore_FetchAndApply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(productsResponse{
			Products: []productDTO{{ID: 1, Title: "Pen", Price: 2}},
			Total:    41,
			Skip:     20,
			Limit:    20,
		})
	}))
	defer srv.Close()

	store := newRemotePageStore(newAPIClient(srv.URL, nil), 20)
	store.SetParams("", 2, nil)

	assert.False(t, store.IsFetching())
	cmd := store.FetchCmd()
	assert.True(t, store.IsFetching())
	assert.True(t, store.IsLoading(), "first fetch is the initial load")

	msg, ok := cmd().(pageLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	require.True(t, store.Apply(msg))
	assert.False(t, store.IsFetching())
	assert.False(t, store.IsLoading())
	require.Len(t, store.Rows(), 1)
	assert.Equal(t, "Pen", store.Rows()[0].Name)
	assert.Equal(t, 41, store.Total())
	assert.Equal(t, 20, store.Skip())
	assert.Empty(t, store.Error())
}

func TestRemotePageStore_StaleResponseDiscarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		title := "Old"
		if query == "new" {
			title = "New"
		}
		_ = json.NewEncoder(w).Encode(productsResponse{
			Products: []productDTO{{ID: 1, Title: title}},
			Total:    1,
		})
	}))
	defer srv.Close()

	store := newRemotePageStore(newAPIClient(srv.URL, nil), 20)

	store.SetParams("old", 1, nil)
	oldCmd := store.FetchCmd()
	store.SetParams("new", 1, nil)
	newCmd := store.FetchCmd()

	// The newer response lands first.
	newMsg := newCmd().(pageLoadedMsg)
	require.True(t, store.Apply(newMsg))
	assert.Equal(t, "New", store.Rows()[0].Name)

	// The superseded one is ignored.
	oldMsg := oldCmd().(pageLoadedMsg)
	assert.False(t, store.Apply(oldMsg))
	assert.Equal(t, "New", store.Rows()[0].Name)
}

func TestRemotePageStore_ErrorKeepsLastGoodPage(t *testing.T) {
	failing := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"upstream down"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(productsResponse{
			Products: []productDTO{{ID: 1, Title: "Pen"}},
			Total:    1,
		})
	}))
	defer srv.Close()

	store := newRemotePageStore(newAPIClient(srv.URL, nil), 20)
	store.SetParams("", 1, nil)
	require.True(t, store.Apply(store.FetchCmd()().(pageLoadedMsg)))
	require.Len(t, store.Rows(), 1)

	failing = true
	require.True(t, store.Apply(store.FetchCmd()().(pageLoadedMsg)))
	assert.Equal(t, "upstream down", store.Error())
	assert.Len(t, store.Rows(), 1, "rows from the last good page survive an error")
	assert.False(t, store.IsLoading(), "an already loaded store never regresses to loading")

	failing = false
	require.True(t, store.Apply(store.FetchCmd()().(pageLoadedMsg)))
	assert.Empty(t, store.Error())
}

func TestRemotePageStore_RequestParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(productsResponse{})
	}))
	defer srv.Close()

	store := newRemotePageStore(newAPIClient(srv.URL, nil), 20)
	store.SetParams("cable", 3, &sortState{Key: columnVendor, Direction: sortAsc})
	store.FetchCmd()()

	assert.Equal(t, "/products/search", gotPath)
	assert.Equal(t, []string{"cable"}, gotQuery["q"])
	assert.Equal(t, []string{"40"}, gotQuery["skip"])
	assert.Equal(t, []string{"20"}, gotQuery["limit"])
	assert.Equal(t, []string{"brand"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"asc"}, gotQuery["order"])
	assert.Equal(t, []string{defaultSelectFields}, gotQuery["select"])
}
