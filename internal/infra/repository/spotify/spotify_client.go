package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/angristan/spotify-search-bot/internal/infra/repository/cache/memory"
	"github.com/sirupsen/logrus"
	spotifyLib "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultAPIBaseURL = "https://api.spotify.com/v1/"

	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

type Cache interface {
	Get(ctx context.Context, key string) (*spotifyLib.SearchResult, error)
	Set(ctx context.Context, key string, value *spotifyLib.SearchResult) error
}

type SpotifyClientConfig struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tracer       trace.Tracer
	logger       logrus.FieldLogger
	tokenURL     string
	apiBaseURL   string
	cache        Cache
	now          func() time.Time
}

func NewSpotifyClientConfig(
	clientID string,
	clientSecret string,
	httpClient *http.Client,
	tracer trace.Tracer,
) *SpotifyClientConfig {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &SpotifyClientConfig{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		tracer:       tracer,
		logger:       logrus.StandardLogger(),
		tokenURL:     spotifyauth.TokenURL,
		apiBaseURL:   DefaultAPIBaseURL,
		now:          time.Now,
	}
}

func (c *SpotifyClientConfig) WithLogger(logger logrus.FieldLogger) *SpotifyClientConfig {
	c.logger = logger
	return c
}

func (c *SpotifyClientConfig) WithTokenURL(tokenURL string) *SpotifyClientConfig {
	c.tokenURL = tokenURL
	return c
}

// WithAPIBaseURL overrides the Web API root, e.g. "http://127.0.0.1:8080/v1/".
func (c *SpotifyClientConfig) WithAPIBaseURL(apiBaseURL string) *SpotifyClientConfig {
	if !strings.HasSuffix(apiBaseURL, "/") {
		apiBaseURL += "/"
	}
	c.apiBaseURL = apiBaseURL
	return c
}

func (c *SpotifyClientConfig) WithCache(cache Cache) *SpotifyClientConfig {
	c.cache = cache
	return c
}

func (c *SpotifyClientConfig) WithClock(now func() time.Time) *SpotifyClientConfig {
	c.now = now
	return c
}

type SpotifyClient struct {
	tracer     trace.Tracer
	logger     logrus.FieldLogger
	httpClient *http.Client
	apiBaseURL string
	tokens     *TokenManager
	cache      Cache
	inflight   singleflight.Group
}

// New validates the credentials and builds a client. No request is made
// until the first search.
func New(config *SpotifyClientConfig) (*SpotifyClient, error) {
	if config.clientID == "" || config.clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cache := config.cache
	if cache == nil {
		cache = memory.NewCache[*spotifyLib.SearchResult]()
	}

	return &SpotifyClient{
		tracer:     config.tracer,
		logger:     config.logger,
		httpClient: config.httpClient,
		apiBaseURL: config.apiBaseURL,
		tokens:     newTokenManager(config),
		cache:      cache,
	}, nil
}

// CacheKey identifies a search in the result cache.
func CacheKey(query string, limit int) string {
	return fmt.Sprintf("%s:%d", query, limit)
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultSearchLimit
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	}

	return limit
}

// Token returns a valid access token, renewing it if needed.
func (client *SpotifyClient) Token(ctx context.Context) (string, error) {
	return client.tokens.Token(ctx)
}

// SearchTrack searches tracks matching query. Successful results are cached
// for the lifetime of the client and served without any network call.
func (client *SpotifyClient) SearchTrack(ctx context.Context, query string, limit int) (*spotifyLib.SearchResult, error) {
	ctx, span := client.tracer.Start(ctx, "SpotifyClient.SearchTrack")
	defer span.End()

	query = strings.TrimSpace(query)
	limit = normalizeLimit(limit)

	span.SetAttributes(
		attribute.String("query", query),
		attribute.Int("limit", limit),
	)

	if query == "" {
		return nil, &SearchError{
			StatusCode: http.StatusBadRequest,
			Body:       ErrEmptyQuery.Error(),
			Err:        ErrEmptyQuery,
		}
	}

	key := CacheKey(query, limit)
	if cached, err := client.cache.Get(ctx, key); err == nil {
		span.AddEvent("Cache hit", trace.WithAttributes(attribute.String("key", key)))
		client.logger.WithField("query", query).Debug("Spotify search served from cache")
		return cached, nil
	}
	span.AddEvent("Cache miss")

	// Callers of the same key wait on one request; it outlives the
	// cancellation of whichever caller started it.
	flight := client.inflight.DoChan(key, func() (any, error) {
		return client.search(context.WithoutCancel(ctx), key, query, limit)
	})

	var result singleflight.Result
	select {
	case result = <-flight:
	case <-ctx.Done():
		result.Err = &SearchError{
			StatusCode: StatusTransport,
			Body:       ctx.Err().Error(),
			Err:        ctx.Err(),
		}
	}

	span.SetAttributes(attribute.Bool("shared", result.Shared))
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
		return nil, result.Err
	}

	return result.Val.(*spotifyLib.SearchResult), nil
}

func (client *SpotifyClient) search(ctx context.Context, key string, query string, limit int) (*spotifyLib.SearchResult, error) {
	// A previous in-flight search for this key may have completed in between.
	if cached, err := client.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	token, err := client.tokens.Token(ctx)
	if err != nil {
		return nil, newSearchAuthError(err)
	}

	recorder := &responseRecorder{base: client.httpClient.Transport}
	apiClient := spotifyLib.New(
		&http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{
					AccessToken: token,
					TokenType:   "Bearer",
				}),
				Base: recorder,
			},
			Timeout: client.httpClient.Timeout,
		},
		spotifyLib.WithBaseURL(client.apiBaseURL),
	)

	logger := client.logger.WithFields(logrus.Fields{
		"query": query,
		"limit": limit,
	})
	logger.Info("Searching Spotify")

	result, err := apiClient.Search(ctx, query, spotifyLib.SearchTypeTrack, spotifyLib.Limit(limit))
	if err != nil {
		searchErr := recorder.searchError(err)
		logger.WithFields(logrus.Fields{
			"status":   searchErr.StatusCode,
			"response": searchErr.Body,
		}).WithError(err).Error("Spotify search failed")

		return nil, searchErr
	}

	if err := client.cache.Set(ctx, key, result); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}

	logger.Info("Spotify search succeeded")

	return result, nil
}

func newSearchAuthError(err error) *SearchError {
	searchErr := &SearchError{
		StatusCode: StatusTransport,
		Body:       err.Error(),
		Err:        err,
	}

	if authErr, ok := err.(*AuthError); ok {
		searchErr.StatusCode = authErr.StatusCode
		searchErr.Body = authErr.Body
	}

	return searchErr
}
