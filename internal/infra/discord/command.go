package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type HandlerFunc func(ctx context.Context, reply *Reply) error

type Command struct {
	Definition *discordgo.ApplicationCommand
	Handle     HandlerFunc
}

// Commands lists every slash command the bot registers.
func Commands(searchService SearchService, logger logrus.FieldLogger) []Command {
	return []Command{
		PingCommand(),
		SearchCommand(searchService, logger),
	}
}
