package discord

import (
	"context"
	"errors"
	"fmt"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const searchQueryOption = "query"

func SearchCommand(searchService SearchService, logger logrus.FieldLogger) Command {
	return Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "search",
			Description: "Search for a track on Spotify.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        searchQueryOption,
					Description: "Track, artist or album to look for.",
					Required:    true,
				},
			},
		},
		Handle: func(ctx context.Context, reply *Reply) error {
			if err := reply.Defer(); err != nil {
				return fmt.Errorf("reply.Defer: %w", err)
			}

			query := reply.StringOption(searchQueryOption)

			tracks, err := searchService.Search(ctx, query)
			if errors.Is(err, appspotify.ErrNoResultsFound) {
				return reply.Ephemeral("No results found.")
			}
			if err != nil {
				logger.WithError(err).WithField("query", query).Error("Search command failed")
				return reply.Ephemeral(fmt.Sprintf("An error occurred while searching: %s", err))
			}

			return reply.Embed(renderSearchResults(query, tracks))
		},
	}
}
