package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func PingCommand() Command {
	return Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Check the bot latency.",
		},
		Handle: func(ctx context.Context, reply *Reply) error {
			return reply.Message(fmt.Sprintf("Pong! Latency: %d ms.", reply.Latency().Milliseconds()))
		},
	}
}
