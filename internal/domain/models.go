package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the contract every stored object satisfies.
type Entity interface {
	GetID() string
	// Attribute reports the value of a named public field.
	Attribute(name string) (any, bool)
	// SetAttribute assigns a mutable field without validation. Unknown,
	// immutable or wrongly typed fields are ignored and reported as false.
	SetAttribute(name string, value any) bool
	Touch(at time.Time)
}

// Repository stores entities of one kind keyed by identifier.
type Repository[T Entity] interface {
	Add(entity T)
	Get(id string) (T, bool)
	GetAll() []T
	Update(id string, fields map[string]any) (T, bool)
	Delete(id string) bool
	GetByAttribute(name string, value any) (T, bool)
}

type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BaseModel) GetID() string { return b.ID }

// Touch stamps the update time, never earlier than the creation time.
func (b *BaseModel) Touch(at time.Time) {
	at = at.UTC()
	if at.Before(b.CreatedAt) {
		at = b.CreatedAt
	}
	b.UpdatedAt = at
}

func (b *BaseModel) baseAttribute(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "created_at":
		return b.CreatedAt, true
	case "updated_at":
		return b.UpdatedAt, true
	}
	return nil, false
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
