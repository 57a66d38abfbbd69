package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingsViewDropsSupersededLoad(t *testing.T) {
	arrived := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "slow" {
			close(arrived)
			<-r.Context().Done()
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]any{{"id": "L-1009", "title": "Street Glide", "status": "pending"}},
			"total": 1,
		})
	}))
	defer srv.Close()

	view := NewListingsView(New(srv.URL))
	slow := make(chan bool, 1)
	go func() {
		ok, _ := view.Load(context.Background(), ListingQuery{Search: "slow"})
		slow <- ok
	}()
	<-arrived

	ok, err := view.Load(context.Background(), ListingQuery{Search: "harley"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, <-slow)
	assert.Equal(t, 1, view.Page().Total)
	assert.Equal(t, "L-1009", view.Page().Data[0].ID)
}

func TestListingsViewOverlappingLoadsNeverCancelTheNewest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(20 * time.Millisecond):
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]any{{"id": "L-1009"}},
			"total": 1,
		})
	}))
	defer srv.Close()

	view := NewListingsView(New(srv.URL))
	const loads = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	var mu sync.Mutex
	committed := 0
	var errs []error
	for i := 0; i < loads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := view.Load(context.Background(), ListingQuery{Search: "harley"})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				committed++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, errs)
	assert.GreaterOrEqual(t, committed, 1)
	assert.Equal(t, 1, view.Page().Total)
}

func TestSelectAllOnPageAndApply(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/listings":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data":  []map[string]any{{"id": "L-1"}, {"id": "L-2"}},
				"total": 2,
			})
		case "/api/admin/listings/bulk-action":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "affected": 2})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "tok"
	view := NewListingsView(c)
	_, err := view.Load(context.Background(), ListingQuery{Status: "pending", PageSize: 10})
	require.NoError(t, err)

	view.ToggleAllOnPage()
	assert.Equal(t, []string{"L-1", "L-2"}, view.Selected())

	res, err := view.Apply(context.Background(), "approve", "bulk review")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, "approve", got["action"])
	assert.Empty(t, view.Selected())
}

func TestAPIErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).SignIn(context.Background(), "a@b.com", "x", "1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}
