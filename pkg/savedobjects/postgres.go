package savedobjects

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/datasource/pkg/pg"
)

// Migrations holds the goose migrations for the saved_objects table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations passed to goose.
const MigrationsDir = "migrations"

const (
	selectObjectSQL = `SELECT attributes, refs, updated_at FROM saved_objects WHERE type = $1 AND id = $2`
	upsertObjectSQL = `INSERT INTO saved_objects (type, id, attributes, refs, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (type, id) DO UPDATE
SET attributes = EXCLUDED.attributes, refs = EXCLUDED.refs, updated_at = EXCLUDED.updated_at`
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps records in the saved_objects table.
type PostgresStore struct {
	db  DB
	now func() time.Time
}

// NewPostgresStore wraps a pgx pool (or transaction).
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Get(ctx context.Context, objectType, id string) (*Object, error) {
	var (
		attrs   []byte
		refs    []byte
		updated time.Time
	)
	err := s.db.QueryRow(ctx, selectObjectSQL, objectType, id).Scan(&attrs, &refs, &updated)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	obj := &Object{
		ID:         id,
		Type:       objectType,
		Attributes: json.RawMessage(attrs),
		UpdatedAt:  updated,
	}
	if len(refs) > 0 {
		if err := json.Unmarshal(refs, &obj.References); err != nil {
			return nil, errors.Join(ErrInvalidObject, err)
		}
	}
	return obj, nil
}

func (s *PostgresStore) Put(ctx context.Context, obj *Object) error {
	ensureID(obj)
	if err := validate(obj); err != nil {
		return err
	}

	refs := obj.References
	if refs == nil {
		refs = []Reference{}
	}
	rawRefs, err := json.Marshal(refs)
	if err != nil {
		return errors.Join(ErrInvalidObject, err)
	}
	attrs := obj.Attributes
	if len(attrs) == 0 {
		attrs = json.RawMessage("{}")
	}

	if _, err := s.db.Exec(ctx, upsertObjectSQL, obj.Type, obj.ID, string(attrs), string(rawRefs), s.now().UTC()); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
