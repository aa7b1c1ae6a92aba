package savedobjects

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/datasource/pkg/logger"
)

// WithLogging logs every read at debug level, and store failures other than
// not-found at warn level. Attributes are never logged.
func WithLogging(next Getter, log *slog.Logger) Getter {
	return GetterFunc(func(ctx context.Context, objectType, id string) (*Object, error) {
		start := time.Now()
		obj, err := next.Get(ctx, objectType, id)
		switch {
		case err == nil:
			log.DebugContext(ctx, "saved object read", logger.Object(objectType, id), logger.Duration(time.Since(start)))
		case errors.Is(err, ErrNotFound):
			log.DebugContext(ctx, "saved object not found", logger.Object(objectType, id), logger.Duration(time.Since(start)))
		default:
			log.WarnContext(ctx, "saved object read failed",
				logger.Object(objectType, id),
				logger.Duration(time.Since(start)),
				logger.Error(err),
			)
		}
		return obj, err
	})
}
