package spotify

import (
	"context"

	spotifyLib "github.com/zmb3/spotify/v2"
)

type SpotifyClient interface {
	SearchTrack(ctx context.Context, query string, limit int) (*spotifyLib.SearchResult, error)
}
