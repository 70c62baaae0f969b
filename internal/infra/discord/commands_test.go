package discord_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/angristan/spotify-search-bot/internal/infra/discord"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestPingCommand(t *testing.T) {
	responder := &fakeResponder{latency: 42 * time.Millisecond}
	reply := discord.NewReply(responder, commandInteraction("ping"))

	require.NoError(t, discord.PingCommand().Handle(context.Background(), reply))

	require.Len(t, responder.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, responder.responses[0].Type)
	assert.Equal(t, "Pong! Latency: 42 ms.", responder.responses[0].Data.Content)
	assert.Empty(t, responder.followups)
}

func TestSearchCommand(t *testing.T) {
	t.Run("definition", func(t *testing.T) {
		definition := discord.SearchCommand(stubSearchService{}, nullLogger()).Definition

		assert.Equal(t, "search", definition.Name)
		require.Len(t, definition.Options, 1)
		assert.Equal(t, "query", definition.Options[0].Name)
		assert.Equal(t, discordgo.ApplicationCommandOptionString, definition.Options[0].Type)
		assert.True(t, definition.Options[0].Required)
	})

	t.Run("results", func(t *testing.T) {
		service := stubSearchService{tracks: []appspotify.Track{
			{Name: "Bohemian Rhapsody", Artists: []string{"Queen"}, URL: "https://open.spotify.com/track/1"},
			{Name: "Under Pressure", Artists: []string{"Queen", "David Bowie"}, URL: "https://open.spotify.com/track/2"},
		}}
		responder := &fakeResponder{}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "Queen")))

		require.NoError(t, discord.SearchCommand(service, nullLogger()).Handle(context.Background(), reply))

		require.Len(t, responder.responses, 1)
		assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, responder.responses[0].Type)
		require.Len(t, responder.followups, 1)
		require.Len(t, responder.followups[0].Embeds, 1)

		embed := responder.followups[0].Embeds[0]
		assert.Equal(t, "Search results for 'Queen'", embed.Title)
		assert.Equal(t, 0x2ecc71, embed.Color)
		require.Len(t, embed.Fields, 2)
		assert.Equal(t, "1. Bohemian Rhapsody - Queen", embed.Fields[0].Name)
		assert.Equal(t, "[Listen on Spotify](https://open.spotify.com/track/1)", embed.Fields[0].Value)
		assert.False(t, embed.Fields[0].Inline)
		assert.Equal(t, "2. Under Pressure - Queen, David Bowie", embed.Fields[1].Name)
	})

	t.Run("at most five fields", func(t *testing.T) {
		tracks := make([]appspotify.Track, 0, 7)
		for i := 1; i <= 7; i++ {
			tracks = append(tracks, appspotify.Track{Name: fmt.Sprintf("Track %d", i), Artists: []string{"TWICE"}})
		}
		responder := &fakeResponder{}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "TWICE")))

		require.NoError(t, discord.SearchCommand(stubSearchService{tracks: tracks}, nullLogger()).Handle(context.Background(), reply))

		require.Len(t, responder.followups, 1)
		assert.Len(t, responder.followups[0].Embeds[0].Fields, 5)
	})

	t.Run("long names are truncated", func(t *testing.T) {
		service := stubSearchService{tracks: []appspotify.Track{
			{Name: strings.Repeat("a", 300), Artists: []string{"Queen"}},
		}}
		responder := &fakeResponder{}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "a")))

		require.NoError(t, discord.SearchCommand(service, nullLogger()).Handle(context.Background(), reply))

		name := responder.followups[0].Embeds[0].Fields[0].Name
		assert.Equal(t, 256, len([]rune(name)))
		assert.True(t, strings.HasSuffix(name, "…"))
	})

	t.Run("no results", func(t *testing.T) {
		responder := &fakeResponder{}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "zzzz")))

		err := discord.SearchCommand(stubSearchService{err: appspotify.ErrNoResultsFound}, nullLogger()).Handle(context.Background(), reply)
		require.NoError(t, err)

		require.Len(t, responder.followups, 1)
		assert.Equal(t, "No results found.", responder.followups[0].Content)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, responder.followups[0].Flags)
	})

	t.Run("search failure", func(t *testing.T) {
		responder := &fakeResponder{}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "Queen")))
		service := stubSearchService{err: fmt.Errorf("%w: status 500", appspotify.ErrSpotifyClient)}
		logger, hook := test.NewNullLogger()

		require.NoError(t, discord.SearchCommand(service, logger).Handle(context.Background(), reply))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, "Search command failed", entry.Message)
		assert.Equal(t, "Queen", entry.Data["query"])

		require.Len(t, responder.followups, 1)
		assert.Equal(t, "An error occurred while searching: spotify client error: status 500", responder.followups[0].Content)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, responder.followups[0].Flags)
	})

	t.Run("defer failure", func(t *testing.T) {
		responder := &fakeResponder{respondErr: assert.AnError}
		reply := discord.NewReply(responder, commandInteraction("search", stringOption("query", "Queen")))

		err := discord.SearchCommand(stubSearchService{}, nullLogger()).Handle(context.Background(), reply)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, reply.Acknowledged())
	})
}
