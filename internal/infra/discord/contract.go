package discord

import (
	"context"
	"time"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/bwmarrin/discordgo"
)

type SearchService interface {
	Search(ctx context.Context, query string) ([]appspotify.Track, error)
}

// Responder is the part of *discordgo.Session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	HeartbeatLatency() time.Duration
}

type CommandSyncer interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}
