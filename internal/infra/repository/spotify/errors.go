package spotify

import (
	"errors"
	"fmt"
)

// StatusTransport marks failures where no HTTP response was received.
const StatusTransport = 0

var (
	ErrMissingCredentials = errors.New("spotify client id and client secret must not be empty")
	ErrEmptyQuery         = errors.New("search query must not be empty")
)

// AuthError is returned when the client credentials exchange fails.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == StatusTransport {
		return fmt.Sprintf("unable to authenticate with Spotify: %v", e.Err)
	}

	return fmt.Sprintf("unable to authenticate with Spotify: status %d", e.StatusCode)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SearchError is returned when a track search fails, either because no
// token could be obtained (Err is then an *AuthError) or because the search
// endpoint answered with a non-2xx status.
type SearchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SearchError) Error() string {
	var authErr *AuthError
	if errors.As(e.Err, &authErr) {
		return fmt.Sprintf("spotify search: %v", authErr)
	}
	if e.StatusCode == StatusTransport {
		return fmt.Sprintf("spotify search failed: %v", e.Err)
	}

	return fmt.Sprintf("spotify search failed: status %d", e.StatusCode)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
