package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI simulates the server side of token rotation: one live refresh
// token at a time, one live access token, and a counter of refresh calls.
type fakeAPI struct {
	mu           sync.Mutex
	liveAccess   string
	liveRefresh  string
	refreshCalls int64

	// when set, /protected holds 401 responses until `waitFor` callers
	// have arrived, so they all hit the refresh path at the same instant
	waitFor int64
	arrived int64
	release chan struct{}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.refreshCalls, 1)

		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		ok := req.RefreshToken == f.liveRefresh && f.liveRefresh != ""
		if ok {
			f.liveAccess = "access-" + req.RefreshToken
			f.liveRefresh = "next-" + req.RefreshToken
		}
		access, refresh := f.liveAccess, f.liveRefresh
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid refresh token"})
			return
		}

		// widen the window so every concurrent 401 joins this call
		time.Sleep(100 * time.Millisecond)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  access,
			"refreshToken": refresh,
		})
	})

	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		live := "Bearer " + f.liveAccess
		f.mu.Unlock()

		if r.Header.Get("Authorization") != live {
			if f.waitFor > 0 {
				if atomic.AddInt64(&f.arrived, 1) == f.waitFor {
					close(f.release)
				}
				<-f.release
			}
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return mux
}

func TestClient_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	const workers = 5

	api := &fakeAPI{
		liveAccess:  "fresh-access",
		liveRefresh: "refresh-1",
		waitFor:     workers,
		release:     make(chan struct{}),
	}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL)
	// the client holds a stale access token but a valid refresh token
	require.NoError(t, c.store.Set("stale-access", "refresh-1"))

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out map[string]string
			errs[i] = c.Do(context.Background(), http.MethodGet, "/protected", nil, &out)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&api.refreshCalls),
		"all concurrent 401s must collapse into a single refresh call")

	access, refresh := c.store.Tokens()
	assert.Equal(t, "access-refresh-1", access)
	assert.Equal(t, "next-refresh-1", refresh)
}

func TestClient_RetriesExactlyOnceAfterRefresh(t *testing.T) {
	api := &fakeAPI{
		liveAccess:  "fresh-access",
		liveRefresh: "refresh-1",
	}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.store.Set("stale-access", "refresh-1"))

	var out map[string]string
	err := c.Do(context.Background(), http.MethodGet, "/protected", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, int64(1), atomic.LoadInt64(&api.refreshCalls))
}

func TestClient_NoRefreshWhenTokenIsFresh(t *testing.T) {
	api := &fakeAPI{
		liveAccess:  "fresh-access",
		liveRefresh: "refresh-1",
	}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.store.Set("fresh-access", "refresh-1"))

	var out map[string]string
	err := c.Do(context.Background(), http.MethodGet, "/protected", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, int64(0), atomic.LoadInt64(&api.refreshCalls))
}

func TestClient_RefreshFailureClearsStore(t *testing.T) {
	api := &fakeAPI{
		liveAccess:  "fresh-access",
		liveRefresh: "server-side-token", // client's token will not match
	}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.store.Set("stale-access", "revoked-token"))

	var out map[string]string
	err := c.Do(context.Background(), http.MethodGet, "/protected", nil, &out)

	assert.ErrorIs(t, err, ErrSessionExpired)
	access, refresh := c.store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestClient_NoStoredPair(t *testing.T) {
	api := &fakeAPI{liveAccess: "fresh-access", liveRefresh: "refresh-1"}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := New(srv.URL)

	var out map[string]string
	err := c.Do(context.Background(), http.MethodGet, "/protected", nil, &out)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDefaultFileStore_UsesFixedName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := DefaultFileStore()
	require.NoError(t, err)
	assert.Equal(t, tokenFileName, filepath.Base(s.path))

	require.NoError(t, s.Set("a1", "r1"))
	access, refresh := s.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/tokens.json"
	s := NewFileStore(path)

	require.NoError(t, s.Set("a1", "r1"))
	access, refresh := s.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)

	require.NoError(t, s.Clear())
	access, refresh = s.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// clearing an already-empty store is fine
	require.NoError(t, s.Clear())
}
