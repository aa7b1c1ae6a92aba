package clientpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/datasource/pkg/logger"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

// GetClientFunc is the signature of Pool.GetClient.
type GetClientFunc func(ctx context.Context, dataSourceID string, store savedobjects.Getter) (*opensearch.Child, error)

// Middleware decorates a GetClientFunc.
type Middleware func(next GetClientFunc) GetClientFunc

// Chain applies middlewares to fn. The first middleware is the outermost.
func Chain(fn GetClientFunc, middlewares ...Middleware) GetClientFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		fn = middlewares[i](fn)
	}
	return fn
}

// WithLogging logs every request at the pool boundary. Failures are logged
// with their internal cause, which callers never see.
func WithLogging(log *slog.Logger) Middleware {
	return func(next GetClientFunc) GetClientFunc {
		return func(ctx context.Context, dataSourceID string, store savedobjects.Getter) (*opensearch.Child, error) {
			start := time.Now()
			child, err := next(ctx, dataSourceID, store)
			if err != nil {
				cause := err
				var rerr *RequestError
				if errors.As(err, &rerr) {
					cause = rerr.Cause()
				}
				log.WarnContext(ctx, "data source client request failed",
					logger.DataSourceID(dataSourceID),
					logger.Duration(time.Since(start)),
					logger.Error(cause),
				)
				return nil, err
			}

			attrs := []any{
				logger.DataSourceID(dataSourceID),
				logger.Endpoint(child.Endpoint()),
				logger.Duration(time.Since(start)),
			}
			if _, ok := child.BasicAuth(); ok {
				attrs = append(attrs, logger.AuthType("basic"))
			}
			log.DebugContext(ctx, "data source client ready", attrs...)
			return child, nil
		}
	}
}

// WithRecovery turns a panic below it into an invalid request error.
func WithRecovery(log *slog.Logger) Middleware {
	return func(next GetClientFunc) GetClientFunc {
		return func(ctx context.Context, dataSourceID string, store savedobjects.Getter) (child *opensearch.Child, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.ErrorContext(ctx, "recovered from panic in data source client request",
						logger.DataSourceID(dataSourceID),
						slog.Any("panic", r),
					)
					child = nil
					err = newRequestError(dataSourceID, fmt.Errorf("panic: %v", r))
				}
			}()
			return next(ctx, dataSourceID, store)
		}
	}
}
