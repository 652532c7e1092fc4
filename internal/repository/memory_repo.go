package repository

import (
	"sync"
	"time"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"

	"github.com/sirupsen/logrus"
)

// Storable is an entity that can hand out independent copies of itself.
type Storable[T any] interface {
	domain.Entity
	Clone() T
}

// InMemoryRepository keeps entities of one kind in insertion order. Stored
// values are copies; callers persist changes by calling Add again.
type InMemoryRepository[T Storable[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	kind  string
	log   *logrus.Logger
}

func NewInMemoryRepository[T Storable[T]](kind string, logger *logrus.Logger) *InMemoryRepository[T] {
	return &InMemoryRepository[T]{
		items: make(map[string]T),
		kind:  kind,
		log:   logger,
	}
}

var (
	_ domain.Repository[*domain.User]    = (*InMemoryRepository[*domain.User])(nil)
	_ domain.Repository[*domain.Place]   = (*InMemoryRepository[*domain.Place])(nil)
	_ domain.Repository[*domain.Amenity] = (*InMemoryRepository[*domain.Amenity])(nil)
	_ domain.Repository[*domain.Review]  = (*InMemoryRepository[*domain.Review])(nil)
)

// Add inserts or overwrites by identifier. Uniqueness is the caller's concern.
func (r *InMemoryRepository[T]) Add(entity T) {
	id := entity.GetID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
		r.log.Debugf("Repository: Stored new %s with ID: %s", r.kind, id)
	} else {
		r.log.Debugf("Repository: Overwrote %s with ID: %s", r.kind, id)
	}
	r.items[id] = entity.Clone()
}

func (r *InMemoryRepository[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	if !ok {
		r.log.Debugf("Repository: %s with ID %s not found", r.kind, id)
		var zero T
		return zero, false
	}
	return entity.Clone(), true
}

// GetAll returns a snapshot in insertion order.
func (r *InMemoryRepository[T]) GetAll() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id].Clone())
	}
	return out
}

// Update assigns the fields the entity recognises and skips the rest. It
// does not run domain validation.
func (r *InMemoryRepository[T]) Update(id string, fields map[string]any) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		r.log.Warnf("Repository: %s with ID %s not found for update", r.kind, id)
		var zero T
		return zero, false
	}

	entity := stored.Clone()
	applied := 0
	for key, value := range fields {
		if entity.SetAttribute(key, value) {
			applied++
			continue
		}
		r.log.Debugf("Repository: Skipping unknown field '%s' for %s ID %s", key, r.kind, id)
	}
	if applied > 0 {
		entity.Touch(time.Now())
		r.items[id] = entity
	}

	r.log.Debugf("Repository: Applied %d field(s) to %s ID %s", applied, r.kind, id)
	return entity.Clone(), true
}

func (r *InMemoryRepository[T]) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		r.log.Debugf("Repository: Attempted to delete non-existent %s ID %s", r.kind, id)
		return false
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Debugf("Repository: Deleted %s with ID: %s", r.kind, id)
	return true
}

// GetByAttribute returns the first entity, in insertion order, whose named
// field equals value.
func (r *InMemoryRepository[T]) GetByAttribute(name string, value any) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		entity := r.items[id]
		attr, ok := entity.Attribute(name)
		if ok && attributeEquals(attr, value) {
			return entity.Clone(), true
		}
	}
	var zero T
	return zero, false
}

func (r *InMemoryRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func attributeEquals(attr, value any) (equal bool) {
	// Non-comparable dynamic types never match.
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return attr == value
}
