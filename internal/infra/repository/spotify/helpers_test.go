package spotify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/angristan/spotify-search-bot/internal/infra/repository/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

const queenSearchResponse = `{
	"tracks": {
		"href": "https://api.spotify.com/v1/search?query=Queen&type=track&offset=0&limit=5",
		"items": [
			{
				"name": "Bohemian Rhapsody",
				"artists": [{"name": "Queen"}],
				"external_urls": {"spotify": "https://open.spotify.com/track/4u7EnebtmKWzUH433cf5Qv"}
			}
		],
		"limit": 5,
		"offset": 0,
		"total": 1
	}
}`

// fakeSpotify stands in for both the accounts service and the Web API.
type fakeSpotify struct {
	server *httptest.Server

	authCalls   atomic.Int32
	searchCalls atomic.Int32

	mu           sync.Mutex
	authStatus   int
	authBody     string
	searchStatus int
	searchBody   string
	lastSearch   url.Values
	lastBearer   string

	authHold   *hold
	searchHold *hold
}

// hold parks requests on an endpoint until released.
type hold struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newHold(t *testing.T) *hold {
	h := &hold{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	t.Cleanup(h.Release)

	return h
}

func (h *hold) wait() {
	if h == nil {
		return
	}

	select {
	case h.entered <- struct{}{}:
	default:
	}
	<-h.release
}

func (h *hold) Release() {
	h.once.Do(func() { close(h.release) })
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	t.Helper()

	f := &fakeSpotify{
		authStatus:   http.StatusOK,
		authBody:     `{"access_token": "tok1", "token_type": "Bearer", "expires_in": 3600}`,
		searchStatus: http.StatusOK,
		searchBody:   queenSearchResponse,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.authCalls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		id, secret, ok := r.BasicAuth()
		assert.True(t, ok, "expected basic auth")
		assert.Equal(t, "test_id", id)
		assert.Equal(t, "test_secret", secret)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		f.mu.Lock()
		status, body, h := f.authStatus, f.authBody, f.authHold
		f.mu.Unlock()
		h.wait()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls.Add(1)

		assert.Equal(t, http.MethodGet, r.Method)

		f.mu.Lock()
		f.lastSearch = r.URL.Query()
		f.lastBearer = r.Header.Get("Authorization")
		status, body, h := f.searchStatus, f.searchBody, f.searchHold
		f.mu.Unlock()
		h.wait()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeSpotify) setAuthResponse(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authStatus, f.authBody = status, body
}

func (f *fakeSpotify) setSearchResponse(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchStatus, f.searchBody = status, body
}

func (f *fakeSpotify) holdAuth(t *testing.T) *hold {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authHold = newHold(t)
	return f.authHold
}

func (f *fakeSpotify) holdSearch(t *testing.T) *hold {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchHold = newHold(t)
	return f.searchHold
}

func (f *fakeSpotify) lastSearchRequest() (url.Values, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSearch, f.lastBearer
}

func (f *fakeSpotify) config(clock *fakeClock) *spotify.SpotifyClientConfig {
	return spotify.NewSpotifyClientConfig("test_id", "test_secret", f.server.Client(), otel.Tracer("test")).
		WithTokenURL(f.server.URL + "/api/token").
		WithAPIBaseURL(f.server.URL + "/v1").
		WithClock(clock.Now)
}

func (f *fakeSpotify) newClient(t *testing.T, clock *fakeClock) *spotify.SpotifyClient {
	t.Helper()

	client, err := spotify.New(f.config(clock))
	require.NoError(t, err)

	return client
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func tokenBody(token string, expiresIn int) string {
	body, _ := json.Marshal(map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
	})
	return string(body)
}
