package spotify

import (
	"errors"

	"go.opentelemetry.io/otel/trace"
)

// MaxResults is the number of tracks requested from Spotify and shown to users.
const MaxResults = 5

type SpotifySearchService struct {
	tracer        trace.Tracer
	spotifyClient SpotifyClient
}

func New(
	tracer trace.Tracer,
	spotifyClient SpotifyClient,
) SpotifySearchService {
	return SpotifySearchService{
		tracer:        tracer,
		spotifyClient: spotifyClient,
	}
}

var (
	ErrEmptyQuery     = errors.New("query is required")
	ErrNoResultsFound = errors.New("no results found")
	ErrSpotifyClient  = errors.New("spotify client error")
)
