package clientpool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/clientpool"
	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) clientpool.Middleware {
		return func(next clientpool.GetClientFunc) clientpool.GetClientFunc {
			return func(ctx context.Context, id string, store savedobjects.Getter) (*opensearch.Child, error) {
				calls = append(calls, name)
				return next(ctx, id, store)
			}
		}
	}
	final := func(context.Context, string, savedobjects.Getter) (*opensearch.Child, error) {
		calls = append(calls, "final")
		return nil, nil
	}

	_, err := clientpool.Chain(final, mark("outer"), mark("inner"))(t.Context(), "ds", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "final"}, calls)
}

func TestWithRecovery(t *testing.T) {
	var out syncBuffer
	panicking := clientpool.Middleware(func(clientpool.GetClientFunc) clientpool.GetClientFunc {
		return func(context.Context, string, savedobjects.Getter) (*opensearch.Child, error) {
			panic("store exploded")
		}
	})
	f := newFixture(t).
		dataSource("ds-1", "https://a:9200", "c").
		credential("c", datasource.AuthNoAuth, "", "")
	pool := newPool(t, clientpool.DefaultConfig(),
		clientpool.WithLogger(newTestLogger(&out)),
		clientpool.WithDialer(newFakeDialer(t).Dial),
		clientpool.WithMiddleware(panicking),
	)

	_, err := pool.GetClient(t.Context(), "ds-1", f.store)
	rerr := requireInvalidRequest(t, err)
	assert.Contains(t, rerr.Cause().Error(), "store exploded")
	assert.Contains(t, out.String(), "recovered from panic")
}

func TestWithLogging(t *testing.T) {
	var out syncBuffer
	f := newFixture(t).
		dataSource("ds-ok", "https://a:9200", "c").
		credential("c", datasource.AuthBasic, "admin", "s3cr3t-value")
	pool := newPool(t, clientpool.DefaultConfig(),
		clientpool.WithLogger(newTestLogger(&out)),
		clientpool.WithDialer(newFakeDialer(t).Dial),
	)

	_, err := pool.GetClient(t.Context(), "ds-ok", f.store)
	require.NoError(t, err)
	_, err = pool.GetClient(t.Context(), "ds-missing", f.store)
	requireInvalidRequest(t, err)

	logged := out.String()
	assert.Contains(t, logged, "data source client ready")
	assert.Contains(t, logged, `"data_source_id":"ds-missing"`)
	assert.Contains(t, logged, "data source client request failed")
	assert.Contains(t, logged, clientpool.ErrDataSourceNotFound.Error())
	assert.Contains(t, logged, `"component":"clientpool"`)
	assert.NotContains(t, logged, "s3cr3t-value")
}
