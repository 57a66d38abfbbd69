package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blackpiston/internal/metrics"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

// Persisted writes a snapshot of the wrapped store after every successful
// mutation. Persistence is best effort: a failed save is logged and the
// in-memory result still stands.
type Persisted[T table.Record] struct {
	Store[T]
	Snap    *SQLSnapshot
	Bucket  string
	Timeout time.Duration
	Metrics *metrics.Recorder

	// mu orders export and save together so an older snapshot never
	// lands after a newer one.
	mu sync.Mutex
}

func NewPersisted[T table.Record](store Store[T], snap *SQLSnapshot, bucket string) *Persisted[T] {
	return &Persisted[T]{Store: store, Snap: snap, Bucket: bucket, Timeout: 5 * time.Second}
}

func (p *Persisted[T]) Patch(id string, raw []byte) (T, []string, error) {
	rec, keys, err := p.Store.Patch(id, raw)
	if err == nil {
		p.save()
	}
	return rec, keys, err
}

func (p *Persisted[T]) BulkTransition(ids []string, action string) (int, error) {
	n, err := p.Store.BulkTransition(ids, action)
	if err == nil && n > 0 {
		p.save()
	}
	return n, err
}

func (p *Persisted[T]) Create(rec T) (T, error) {
	out, err := p.Store.Create(rec)
	if err == nil {
		p.save()
	}
	return out, err
}

func (p *Persisted[T]) save() {
	p.mu.Lock()
	defer p.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	if err := p.Snap.Save(ctx, p.Bucket, p.Store.Export()); err != nil {
		p.Metrics.PersistFailed()
		utils.LogEvent("", "store", "persist", fmt.Sprintf("bucket=%s err=%v", p.Bucket, err))
	}
}

// Restore imports the saved bucket into store. It reports false when there
// is nothing saved yet, leaving the store as seeded.
func Restore[T table.Record](ctx context.Context, snap *SQLSnapshot, bucket string, store Store[T]) (bool, error) {
	var recs []T
	ok, err := snap.Load(ctx, bucket, &recs)
	if err != nil || !ok {
		return false, err
	}
	if err := store.Import(recs); err != nil {
		return false, fmt.Errorf("restore %s: %w", bucket, err)
	}
	return true, nil
}
