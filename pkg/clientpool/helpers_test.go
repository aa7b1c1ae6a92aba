package clientpool_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/clientpool"
	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/logger"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

// fakeRoot is a real root that never dials, with observable Close.
type fakeRoot struct {
	*opensearch.Root
	closes   atomic.Int32
	closeErr error
}

func (f *fakeRoot) Close() error {
	f.closes.Add(1)
	_ = f.Root.Close()
	return f.closeErr
}

type fakeDialer struct {
	t        *testing.T
	mu       sync.Mutex
	roots    []*fakeRoot
	creates  map[string]int
	err      error
	closeErr error
	delay    time.Duration
	onDial   func(endpoint string) // Runs before the delay.
}

func newFakeDialer(t *testing.T) *fakeDialer {
	return &fakeDialer{t: t, creates: make(map[string]int)}
}

func (d *fakeDialer) Dial(endpoint string) (clientpool.RootClient, error) {
	if d.onDial != nil {
		d.onDial(endpoint)
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}

	root, err := opensearch.NewRoot(endpoint, opensearch.DefaultConfig())
	require.NoError(d.t, err)
	fr := &fakeRoot{Root: root, closeErr: d.closeErr}
	d.roots = append(d.roots, fr)
	d.creates[endpoint]++
	return fr, nil
}

func (d *fakeDialer) Creates(endpoint string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.creates[endpoint]
}

func (d *fakeDialer) Roots() []*fakeRoot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*fakeRoot(nil), d.roots...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// syncBuffer collects log output written from disposal goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(out *syncBuffer) *slog.Logger {
	return logger.New(logger.WithOutput(out), logger.WithLevel(slog.LevelDebug))
}

type fixture struct {
	t     *testing.T
	store *savedobjects.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, store: savedobjects.NewMemoryStore()}
}

func (f *fixture) dataSource(id, endpoint, credentialID string) *fixture {
	f.t.Helper()
	obj, err := datasource.NewDataSourceObject(datasource.DataSource{
		ID: id, Title: id, Endpoint: endpoint, CredentialID: credentialID,
	})
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Put(f.t.Context(), obj))
	return f
}

func (f *fixture) credential(id string, authType datasource.AuthType, username, password string) *fixture {
	f.t.Helper()
	obj, err := datasource.NewCredentialObject(datasource.Credential{
		ID: id, Title: id, AuthType: authType,
		Materials: datasource.Materials{Username: username, Password: password},
	})
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Put(f.t.Context(), obj))
	return f
}

func (f *fixture) raw(obj *savedobjects.Object) *fixture {
	f.t.Helper()
	require.NoError(f.t, f.store.Put(f.t.Context(), obj))
	return f
}

var errStoreDown = errors.New("store is down")

func failingStore(err error) savedobjects.Getter {
	return savedobjects.GetterFunc(func(_ context.Context, _, _ string) (*savedobjects.Object, error) {
		return nil, err
	})
}
