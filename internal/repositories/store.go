package repositories

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/table"
)

// Entity is a record the store can validate and stamp on mutation.
type Entity[T any] interface {
	table.Record
	Validate() error
	Touch(ts string) T
}

// Transitioner is implemented by entities that support bulk actions.
type Transitioner[T any] interface {
	Transition(action string) (T, bool)
}

// Store is the entity store contract the services depend on.
type Store[T table.Record] interface {
	List(filter func(T) bool) []T
	Get(id string) (T, error)
	Patch(id string, raw []byte) (T, []string, error)
	BulkTransition(ids []string, action string) (int, error)
	Create(rec T) (T, error)
	Exists(id string) bool
	Export() []T
	Import(recs []T) error
}

// MemoryStore keeps records in insertion order behind a RWMutex. Every
// operation is atomic on its own; concurrent patches are last-write-wins.
type MemoryStore[T Entity[T]] struct {
	Resource string
	Now      func() time.Time
	// WithID assigns a generated id on Create when the record has none.
	WithID func(rec T, id string) T

	mu   sync.RWMutex
	rows []T
	idx  map[string]int
}

var (
	_ Store[models.Listing] = (*MemoryStore[models.Listing])(nil)
	_ Store[models.User]    = (*MemoryStore[models.User])(nil)
)

// NewMemoryStore seeds a store. Duplicate ids and invalid seeds are rejected.
func NewMemoryStore[T Entity[T]](resource string, seed []T) (*MemoryStore[T], error) {
	s := &MemoryStore[T]{Resource: resource}
	if err := s.Import(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MemoryStore[T]) now() string {
	if s.Now != nil {
		return s.Now().UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *MemoryStore[T]) notFound(id string) error {
	return domain.NotFoundError{Resource: s.Resource, ID: id}
}

// List returns every record, or the ones filter accepts, in store order.
func (s *MemoryStore[T]) List(filter func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.rows))
	for _, r := range s.rows {
		if filter == nil || filter(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *MemoryStore[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.idx[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}
	return s.rows[i], nil
}

func (s *MemoryStore[T]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.idx[id]
	return ok
}

// Patch merges the JSON object raw into the record, stamps it and replaces
// it at the same position. It returns the keys that were applied.
func (s *MemoryStore[T]) Patch(id string, raw []byte) (T, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i, ok := s.idx[id]
	if !ok {
		return zero, nil, s.notFound(id)
	}
	merged, keys, err := buildPatch(s.rows[i], raw)
	if err != nil {
		return zero, nil, err
	}
	merged = merged.Touch(s.now())
	if err := merged.Validate(); err != nil {
		return zero, nil, err
	}
	s.rows[i] = merged
	return merged, keys, nil
}

// BulkTransition applies action to every id present in the store. Unknown
// ids are skipped and not counted. An action the entity does not support is
// a validation error and nothing changes.
func (s *MemoryStore[T]) BulkTransition(ids []string, action string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	affected := 0
	seen := map[string]bool{}
	for _, id := range ids {
		i, ok := s.idx[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		tr, ok := any(s.rows[i]).(Transitioner[T])
		if !ok {
			return 0, domain.ValidationError{Field: "action", Msg: s.Resource + " does not support bulk actions"}
		}
		next, ok := tr.Transition(action)
		if !ok {
			return 0, domain.ValidationError{Field: "action", Msg: "unknown action " + action}
		}
		s.rows[i] = next.Touch(ts)
		affected++
	}
	return affected, nil
}

// Create validates rec and prepends it, so the newest record lists first.
func (s *MemoryStore[T]) Create(rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if rec.RecordID() == "" && s.WithID != nil {
		rec = s.WithID(rec, uuid.NewString())
	}
	if _, dup := s.idx[rec.RecordID()]; dup {
		return zero, domain.ConflictError{Resource: s.Resource, Msg: "id " + rec.RecordID() + " already exists"}
	}
	rec = rec.Touch(s.now())
	if err := rec.Validate(); err != nil {
		return zero, err
	}
	s.rows = slices.Insert(s.rows, 0, rec)
	s.reindex()
	return rec, nil
}

// Export returns a copy of all records in store order.
func (s *MemoryStore[T]) Export() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rows)
}

// Import replaces the contents with recs.
func (s *MemoryStore[T]) Import(recs []T) error {
	idx := make(map[string]int, len(recs))
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := idx[r.RecordID()]; dup {
			return domain.ConflictError{Resource: s.Resource, Msg: "duplicate id " + r.RecordID()}
		}
		idx[r.RecordID()] = i
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.Clone(recs)
	s.idx = idx
	return nil
}

func (s *MemoryStore[T]) reindex() {
	s.idx = make(map[string]int, len(s.rows))
	for i, r := range s.rows {
		s.idx[r.RecordID()] = i
	}
}
