package opensearch_test

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/opensearch"
)

type recordedAuth struct {
	present  bool
	username string
	password string
}

func newCluster(t *testing.T, tlsServer bool) (*httptest.Server, func() []recordedAuth) {
	t.Helper()

	var (
		mu   sync.Mutex
		seen []recordedAuth
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		mu.Lock()
		seen = append(seen, recordedAuth{present: ok, username: user, password: pass})
		mu.Unlock()

		if ok && user == "denied" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cluster_name":"test","version":{"number":"2.11.0","distribution":"opensearch"}}`))
	})

	var srv *httptest.Server
	if tlsServer {
		srv = httptest.NewTLSServer(handler)
	} else {
		srv = httptest.NewServer(handler)
	}
	t.Cleanup(srv.Close)

	return srv, func() []recordedAuth {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedAuth(nil), seen...)
	}
}

func testConfig() opensearch.Config {
	cfg := opensearch.DefaultConfig()
	cfg.DisableRetry = true
	return cfg
}

func TestNewRoot(t *testing.T) {
	t.Run("valid endpoint", func(t *testing.T) {
		root, err := opensearch.NewRoot("https://localhost:9200", testConfig())
		require.NoError(t, err)
		assert.Equal(t, "https://localhost:9200", root.Endpoint())
		assert.NotNil(t, root.Client())
		require.NoError(t, root.Close())
	})

	for _, endpoint := range []string{"", "localhost:9200", "ftp://localhost", "https://", "://bad"} {
		t.Run("invalid endpoint "+endpoint, func(t *testing.T) {
			_, err := opensearch.NewRoot(endpoint, testConfig())
			assert.ErrorIs(t, err, opensearch.ErrInvalidEndpoint)
		})
	}

	t.Run("missing ca file", func(t *testing.T) {
		cfg := testConfig()
		cfg.CACertFile = filepath.Join(t.TempDir(), "missing.pem")
		_, err := opensearch.NewRoot("https://localhost:9200", cfg)
		assert.ErrorIs(t, err, opensearch.ErrInvalidCACert)
	})

	t.Run("ca file without certificates", func(t *testing.T) {
		cfg := testConfig()
		cfg.CACertFile = filepath.Join(t.TempDir(), "empty.pem")
		require.NoError(t, os.WriteFile(cfg.CACertFile, []byte("not a cert"), 0o600))
		_, err := opensearch.NewRoot("https://localhost:9200", cfg)
		assert.ErrorIs(t, err, opensearch.ErrInvalidCACert)
	})
}

func TestRoot_Close(t *testing.T) {
	root, err := opensearch.NewRoot("http://localhost:9200", testConfig())
	require.NoError(t, err)

	assert.False(t, root.Closed())
	require.NoError(t, root.Close())
	assert.True(t, root.Closed())
	assert.ErrorIs(t, root.Close(), opensearch.ErrClientClosed)
}

func TestRoot_Child(t *testing.T) {
	srv, seen := newCluster(t, false)

	root, err := opensearch.NewRoot(srv.URL, testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	t.Run("no auth", func(t *testing.T) {
		child := root.Child()
		_, ok := child.BasicAuth()
		assert.False(t, ok)
		assert.Equal(t, srv.URL, child.Endpoint())

		res, err := child.Info()
		require.NoError(t, err)
		res.Body.Close()
	})

	t.Run("basic auth", func(t *testing.T) {
		child := root.Child(opensearch.WithBasicAuth("alice", "s3cret"))
		auth, ok := child.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, opensearch.BasicAuth{Username: "alice", Password: "s3cret"}, auth)

		res, err := child.Info()
		require.NoError(t, err)
		res.Body.Close()
	})

	t.Run("root stays unauthenticated", func(t *testing.T) {
		res, err := root.Child().Info()
		require.NoError(t, err)
		res.Body.Close()
	})

	got := seen()
	require.Len(t, got, 3)
	assert.Equal(t, recordedAuth{}, got[0])
	assert.Equal(t, recordedAuth{present: true, username: "alice", password: "s3cret"}, got[1])
	assert.Equal(t, recordedAuth{}, got[2])
}

func TestRoot_CertificateVerification(t *testing.T) {
	srv, _ := newCluster(t, true)

	t.Run("untrusted certificate is rejected", func(t *testing.T) {
		root, err := opensearch.NewRoot(srv.URL, testConfig())
		require.NoError(t, err)
		t.Cleanup(func() { _ = root.Close() })

		_, err = root.Child().Info()
		assert.Error(t, err)
	})

	t.Run("private ca is trusted", func(t *testing.T) {
		cfg := testConfig()
		cfg.CACertFile = filepath.Join(t.TempDir(), "ca.pem")
		block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
		require.NoError(t, os.WriteFile(cfg.CACertFile, block, 0o600))

		root, err := opensearch.NewRoot(srv.URL, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = root.Close() })

		res, err := root.Child().Info()
		require.NoError(t, err)
		res.Body.Close()
	})
}
