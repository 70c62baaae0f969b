package discord_test

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

type fakeResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
	latency   time.Duration

	respondErr  error
	followupErr error
}

func (f *fakeResponder) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)

	return nil
}

func (f *fakeResponder) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.followupErr != nil {
		return nil, f.followupErr
	}
	f.followups = append(f.followups, data)

	return &discordgo.Message{Content: data.Content, Embeds: data.Embeds}, nil
}

func (f *fakeResponder) HeartbeatLatency() time.Duration {
	return f.latency
}

type fakeSyncer struct {
	appID    string
	guildID  string
	commands []*discordgo.ApplicationCommand
	err      error
}

func (f *fakeSyncer) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.appID, f.guildID, f.commands = appID, guildID, commands
	if f.err != nil {
		return nil, f.err
	}

	return commands, nil
}

func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "interaction",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "guild",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "user"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
	}
}

func stringOption(name string, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}
