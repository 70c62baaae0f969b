package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// TokenExpiryMargin is subtracted from a token's lifetime so that a token is
// never presented when it is about to expire mid-flight.
const TokenExpiryMargin = 60 * time.Second

type AccessToken struct {
	Value     string
	TokenType string
	IssuedAt  time.Time
	Lifetime  time.Duration
}

func (t *AccessToken) Expired(now time.Time) bool {
	return now.After(t.IssuedAt.Add(t.Lifetime - TokenExpiryMargin))
}

// TokenManager owns the single access token of a client and renews it through
// the client credentials grant once it expires.
type TokenManager struct {
	tracer     trace.Tracer
	logger     logrus.FieldLogger
	httpClient *http.Client
	config     clientcredentials.Config
	now        func() time.Time

	mu      sync.RWMutex
	token   *AccessToken
	refresh singleflight.Group
}

func newTokenManager(config *SpotifyClientConfig) *TokenManager {
	return &TokenManager{
		tracer:     config.tracer,
		logger:     config.logger,
		httpClient: config.httpClient,
		config: clientcredentials.Config{
			ClientID:     config.clientID,
			ClientSecret: config.clientSecret,
			TokenURL:     config.tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		now: config.now,
	}
}

// Token returns a valid bearer credential, performing one client credentials
// exchange when the cached token is absent or expired.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	ctx, span := m.tracer.Start(ctx, "TokenManager.Token")
	defer span.End()

	if token := m.current(); token != nil {
		span.AddEvent("Token is still valid, no need to refresh", trace.WithAttributes(
			attribute.Float64("seconds_until_expiry", token.IssuedAt.Add(token.Lifetime).Sub(m.now()).Seconds()),
		))
		return token.Value, nil
	}

	// The exchange is shared by every waiting caller, so it must not be
	// cancelled with the context of the one that started it.
	flight := m.refresh.DoChan("token", func() (any, error) {
		// Another caller may have renewed the token while this one was waiting.
		if token := m.current(); token != nil {
			return token, nil
		}

		return m.exchange(context.WithoutCancel(ctx))
	})

	var result singleflight.Result
	select {
	case result = <-flight:
	case <-ctx.Done():
		result.Err = newAuthError(ctx.Err())
	}

	span.SetAttributes(attribute.Bool("shared", result.Shared))
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
		return "", result.Err
	}

	span.AddEvent("Token refreshed")

	return result.Val.(*AccessToken).Value, nil
}

// current returns the cached token if it has not expired yet.
func (m *TokenManager) current() *AccessToken {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil || m.token.Expired(m.now()) {
		return nil
	}

	return m.token
}

func (m *TokenManager) exchange(ctx context.Context) (*AccessToken, error) {
	m.logger.Info("Requesting a new Spotify access token")

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	oauthToken, err := m.config.Token(ctx)
	if err != nil {
		authErr := newAuthError(err)
		m.logger.WithFields(logrus.Fields{
			"status":   authErr.StatusCode,
			"response": authErr.Body,
		}).WithError(err).Error("Failed to obtain a Spotify access token")

		return nil, authErr
	}

	token := &AccessToken{
		Value:     oauthToken.AccessToken,
		TokenType: oauthToken.Type(),
		IssuedAt:  m.now(),
		Lifetime:  tokenLifetime(oauthToken),
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	m.logger.WithField("expires_in", token.Lifetime.Seconds()).Info("Spotify access token obtained")

	return token, nil
}

func newAuthError(err error) *AuthError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &AuthError{
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       string(retrieveErr.Body),
			Err:        err,
		}
	}

	return &AuthError{
		StatusCode: StatusTransport,
		Body:       err.Error(),
		Err:        err,
	}
}

// tokenLifetime reads the server-declared expires_in. The computed Expiry is
// only used when the raw field is not available.
func tokenLifetime(token *oauth2.Token) time.Duration {
	switch v := token.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v * float64(time.Second))
	case int64:
		return time.Duration(v) * time.Second
	case json.Number:
		if seconds, err := v.Int64(); err == nil {
			return time.Duration(seconds) * time.Second
		}
	case string:
		if seconds, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	if token.Expiry.IsZero() {
		return 0
	}

	return time.Until(token.Expiry).Round(time.Second)
}
