package spotify

import (
	"strings"

	spotifyLib "github.com/zmb3/spotify/v2"
)

type Track struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	URL     string   `json:"url"`
}

func (t Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

func newTrack(track spotifyLib.FullTrack) Track {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	return Track{
		Name:    track.Name,
		Artists: artists,
		URL:     track.ExternalURLs["spotify"],
	}
}
