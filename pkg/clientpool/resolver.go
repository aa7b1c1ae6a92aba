package clientpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/logger"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

var errNoStore = errors.New("no record store supplied")

// Resolver reads a data source and the credential it references.
// It keeps no state between calls, so a rotated credential is picked up
// by the next request.
type Resolver struct {
	log *slog.Logger
}

func NewResolver(log *slog.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{log: log}
}

// Resolve performs the two reads in order: data source, then credential.
func (r *Resolver) Resolve(ctx context.Context, dataSourceID string, store savedobjects.Getter) (*datasource.DataSource, *datasource.Credential, error) {
	if store == nil {
		return nil, nil, errors.Join(ErrResolutionFailed, errNoStore)
	}

	obj, err := store.Get(ctx, datasource.DataSourceType, dataSourceID)
	if err != nil {
		return nil, nil, lookupError(err, ErrDataSourceNotFound, dataSourceID)
	}
	ds, err := datasource.DecodeDataSource(obj)
	if err != nil {
		return nil, nil, err
	}

	obj, err = store.Get(ctx, datasource.CredentialType, ds.CredentialID)
	if err != nil {
		return nil, nil, lookupError(err, ErrCredentialNotFound, ds.CredentialID)
	}
	cred, err := datasource.DecodeCredential(obj)
	if err != nil {
		return nil, nil, err
	}

	r.log.DebugContext(ctx, "resolved data source",
		logger.DataSourceID(ds.ID),
		logger.CredentialID(cred.ID),
		logger.AuthType(string(cred.AuthType)),
	)
	return ds, cred, nil
}

func lookupError(err, notFound error, id string) error {
	if errors.Is(err, savedobjects.ErrNotFound) {
		return fmt.Errorf("%w: %q", notFound, id)
	}
	return errors.Join(ErrResolutionFailed, err)
}
