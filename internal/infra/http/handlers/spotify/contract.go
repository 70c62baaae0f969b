package spotify

import (
	"context"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
)

type SpotifyService interface {
	Search(ctx context.Context, query string) ([]appspotify.Track, error)
}
