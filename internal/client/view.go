package client

import (
	"context"
	"sync"

	"blackpiston/internal/domain/models"
	"blackpiston/internal/services"
	"blackpiston/internal/table"
)

// ListingsView is a remote listings table. Every Load supersedes the one
// before it: the older request is cancelled and, if its response still
// arrives, it is dropped rather than committed.
type ListingsView struct {
	Client *Client

	seq table.Sequencer

	mu       sync.Mutex
	cancel   context.CancelFunc
	current  services.Result[models.Listing]
	selected *table.Selection
}

func NewListingsView(c *Client) *ListingsView {
	return &ListingsView{Client: c, selected: table.NewSelection()}
}

// Load fetches q and commits it as the current page. committed is false
// when a newer Load replaced this one.
func (v *ListingsView) Load(ctx context.Context, q ListingQuery) (committed bool, err error) {
	ctx, cancel := context.WithCancel(ctx)

	// ticket order and cancel order must agree, so both happen under mu
	v.mu.Lock()
	ticket := v.seq.Next()
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = cancel
	v.mu.Unlock()

	res, err := v.Client.Listings(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.seq.Current(ticket) {
		cancel()
		return false, nil
	}
	v.cancel = nil
	cancel()
	if err != nil {
		return false, err
	}
	v.current = res
	if v.selected == nil {
		v.selected = table.NewSelection()
	}
	return true, nil
}

// Page is the last committed result.
func (v *ListingsView) Page() services.Result[models.Listing] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// ToggleAllOnPage selects every row of the committed page, or clears them
// when all are already selected.
func (v *ListingsView) ToggleAllOnPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		v.selected = table.NewSelection()
	}
	v.selected.ToggleAllOnPage(table.IDs(v.current.Data))
}

func (v *ListingsView) Toggle(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		v.selected = table.NewSelection()
	}
	v.selected.Toggle(id)
}

// Selected lists the selected ids in selection order.
func (v *ListingsView) Selected() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		return nil
	}
	return v.selected.IDs()
}

// Apply runs action on the selection and clears it on success.
func (v *ListingsView) Apply(ctx context.Context, action, reason string) (services.BulkResult, error) {
	ids := v.Selected()
	if len(ids) == 0 {
		return services.BulkResult{Success: true}, nil
	}
	res, err := v.Client.BulkListings(ctx, services.BulkRequest{IDs: ids, Action: action, Reason: reason})
	if err != nil {
		return res, err
	}
	v.mu.Lock()
	v.selected.Clear()
	v.mu.Unlock()
	return res, nil
}
