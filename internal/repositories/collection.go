package repositories

import (
	"slices"
	"sync"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/table"
)

// Collection is a read-only ordered record set (catalogue, sellers,
// transactions).
type Collection[T table.Record] struct {
	Resource string
	rows     []T
	idx      map[string]int
}

// NewCollection rejects duplicate ids.
func NewCollection[T table.Record](resource string, rows []T) (*Collection[T], error) {
	idx := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, dup := idx[r.RecordID()]; dup {
			return nil, domain.ConflictError{Resource: resource, Msg: "duplicate id " + r.RecordID()}
		}
		idx[r.RecordID()] = i
	}
	return &Collection[T]{Resource: resource, rows: slices.Clone(rows), idx: idx}, nil
}

func (c *Collection[T]) List(filter func(T) bool) []T {
	out := make([]T, 0, len(c.rows))
	for _, r := range c.rows {
		if filter == nil || filter(r) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Collection[T]) Get(id string) (T, error) {
	i, ok := c.idx[id]
	if !ok {
		var zero T
		return zero, domain.NotFoundError{Resource: c.Resource, ID: id}
	}
	return c.rows[i], nil
}

func (c *Collection[T]) Len() int { return len(c.rows) }

// AuditLog is an append-only log, newest entry first.
type AuditLog struct {
	// OnAppend, when set, receives a copy of the log after each append.
	OnAppend func(entries []models.AuditEntry)

	// hook serializes OnAppend calls in append order.
	hook    sync.Mutex
	mu      sync.RWMutex
	entries []models.AuditEntry
}

func NewAuditLog(seed []models.AuditEntry) *AuditLog {
	return &AuditLog{entries: slices.Clone(seed)}
}

// Append records e ahead of older entries.
func (a *AuditLog) Append(e models.AuditEntry) {
	a.hook.Lock()
	defer a.hook.Unlock()

	a.mu.Lock()
	a.entries = slices.Insert(a.entries, 0, e)
	snapshot := slices.Clone(a.entries)
	a.mu.Unlock()

	if a.OnAppend != nil {
		a.OnAppend(snapshot)
	}
}

func (a *AuditLog) List() []models.AuditEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.entries)
}

// Import replaces all entries; used when restoring a snapshot.
func (a *AuditLog) Import(entries []models.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = slices.Clone(entries)
}
