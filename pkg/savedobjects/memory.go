package savedobjects

import (
	"context"
	"sync"
	"time"
)

type objectKey struct {
	objectType string
	id         string
}

// MemoryStore keeps records in a map. It is used in tests and by the
// command line tool for dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[objectKey]*Object
	now     func() time.Time
}

// NewMemoryStore creates an empty store, optionally seeded with objs.
func NewMemoryStore(objs ...*Object) *MemoryStore {
	s := &MemoryStore{
		objects: make(map[objectKey]*Object),
		now:     time.Now,
	}
	for _, obj := range objs {
		if err := s.Put(context.Background(), obj); err != nil {
			panic(err)
		}
	}
	return s
}

// Get returns a copy of the stored record.
func (s *MemoryStore) Get(ctx context.Context, objectType, id string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[objectKey{objectType, id}]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(obj), nil
}

// Put stores a copy of obj, generating an id when it is empty.
func (s *MemoryStore) Put(ctx context.Context, obj *Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ensureID(obj)
	if err := validate(obj); err != nil {
		return err
	}

	stored := clone(obj)
	stored.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey{obj.Type, obj.ID}] = stored
	return nil
}

// Delete removes a record. Missing records are ignored.
func (s *MemoryStore) Delete(objectType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey{objectType, id})
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
