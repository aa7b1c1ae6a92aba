package savedobjects

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reference links one saved object to another.
type Reference struct {
	ID   string `json:"id" bson:"id"`
	Type string `json:"type" bson:"type"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Object is a persisted record: typed attributes plus references to other
// records. Attributes are kept as raw JSON and decoded by the consumer.
type Object struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
	References []Reference     `json:"references,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitzero"`
}

// Getter reads a single record. Implementations must return an error
// matching ErrNotFound when the record does not exist.
type Getter interface {
	Get(ctx context.Context, objectType, id string) (*Object, error)
}

// Store is a Getter that can also write records.
type Store interface {
	Getter
	Put(ctx context.Context, obj *Object) error
}

// GetterFunc adapts a function to the Getter interface.
type GetterFunc func(ctx context.Context, objectType, id string) (*Object, error)

// Get calls f.
func (f GetterFunc) Get(ctx context.Context, objectType, id string) (*Object, error) {
	return f(ctx, objectType, id)
}

// NewObject marshals attrs into a new object.
func NewObject(objectType, id string, attrs any, refs ...Reference) (*Object, error) {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, errors.Join(ErrInvalidObject, err)
	}
	return &Object{ID: id, Type: objectType, Attributes: raw, References: refs}, nil
}

// Decode unmarshals the attributes of obj into T.
func Decode[T any](obj *Object) (T, error) {
	var attrs T
	if obj == nil || len(obj.Attributes) == 0 {
		return attrs, ErrInvalidObject
	}
	if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
		return attrs, errors.Join(ErrInvalidObject, err)
	}
	return attrs, nil
}

func validate(obj *Object) error {
	if obj == nil || obj.ID == "" || obj.Type == "" {
		return ErrInvalidObject
	}
	if len(obj.Attributes) > 0 && !json.Valid(obj.Attributes) {
		return ErrInvalidObject
	}
	return nil
}

func clone(obj *Object) *Object {
	out := *obj
	out.Attributes = append(json.RawMessage(nil), obj.Attributes...)
	out.References = append([]Reference(nil), obj.References...)
	return &out
}

// ensureID assigns a random id to records written without one.
func ensureID(obj *Object) {
	if obj != nil && obj.ID == "" {
		obj.ID = uuid.NewString()
	}
}
