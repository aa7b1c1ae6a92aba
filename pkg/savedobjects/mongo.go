package savedobjects

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoCollection is the collection used by the command line tool.
const DefaultMongoCollection = "saved_objects"

type mongoDocument struct {
	Key        string      `bson:"_id"`
	Type       string      `bson:"type"`
	ID         string      `bson:"id"`
	Attributes string      `bson:"attributes"`
	References []Reference `bson:"references"`
	UpdatedAt  time.Time   `bson:"updated_at"`
}

// MongoStore keeps one document per record, keyed by "<type>:<id>".
// Attributes are stored as a JSON string so they round-trip byte for byte.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore wraps a collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

func (s *MongoStore) Get(ctx context.Context, objectType, id string) (*Object, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: documentKey(objectType, id)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return doc.object(), nil
}

func (s *MongoStore) Put(ctx context.Context, obj *Object) error {
	ensureID(obj)
	if err := validate(obj); err != nil {
		return err
	}

	doc := newMongoDocument(obj, s.now().UTC())
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.Key}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func documentKey(objectType, id string) string {
	return objectType + ":" + id
}

func newMongoDocument(obj *Object, updated time.Time) mongoDocument {
	refs := obj.References
	if refs == nil {
		refs = []Reference{}
	}
	return mongoDocument{
		Key:        documentKey(obj.Type, obj.ID),
		Type:       obj.Type,
		ID:         obj.ID,
		Attributes: string(obj.Attributes),
		References: refs,
		UpdatedAt:  updated,
	}
}

func (d mongoDocument) object() *Object {
	return &Object{
		ID:         d.ID,
		Type:       d.Type,
		Attributes: []byte(d.Attributes),
		References: d.References,
		UpdatedAt:  d.UpdatedAt,
	}
}
