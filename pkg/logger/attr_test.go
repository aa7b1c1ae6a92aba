package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/logger"
)

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, slog.String("data_source_id", "ds-1"), logger.DataSourceID("ds-1"))
	assert.Equal(t, slog.String("credential_id", "cred-1"), logger.CredentialID("cred-1"))
	assert.Equal(t, slog.String("endpoint", "https://e1"), logger.Endpoint("https://e1"))
	assert.Equal(t, slog.String("auth_type", "basic"), logger.AuthType("basic"))
	assert.Equal(t, slog.Duration("duration", time.Second), logger.Duration(time.Second))

	obj := logger.Object("credential", "c1")
	require.Equal(t, "object", obj.Key)
	g := obj.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "credential", g[0].Value.String())
	assert.Equal(t, "c1", g[1].Value.String())
}
