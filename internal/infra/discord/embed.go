package discord

import (
	"fmt"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/bwmarrin/discordgo"
)

const (
	embedColorGreen = 0x2ecc71

	// Discord rejects embeds whose title or field names exceed 256 characters.
	maxEmbedTitleLength = 256
)

func renderSearchResults(query string, tracks []appspotify.Track) *discordgo.MessageEmbed {
	if len(tracks) > appspotify.MaxResults {
		tracks = tracks[:appspotify.MaxResults]
	}

	embed := &discordgo.MessageEmbed{
		Title:  truncate(fmt.Sprintf("Search results for '%s'", query), maxEmbedTitleLength),
		Color:  embedColorGreen,
		Fields: make([]*discordgo.MessageEmbedField, 0, len(tracks)),
	}

	for i, track := range tracks {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   truncate(fmt.Sprintf("%d. %s - %s", i+1, track.Name, track.ArtistNames()), maxEmbedTitleLength),
			Value:  fmt.Sprintf("[Listen on Spotify](%s)", track.URL),
			Inline: false,
		})
	}

	return embed
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}
