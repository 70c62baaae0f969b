package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const genericErrorMessage = "An error occurred while running the command."

var ErrUnknownCommand = errors.New("unknown command")

type Bot struct {
	session  *discordgo.Session
	tracer   trace.Tracer
	logger   logrus.FieldLogger
	guildID  string
	commands []Command
	byName   map[string]Command

	ctx context.Context
}

func New(cfg Config, tracer trace.Tracer, logger logrus.FieldLogger, commands []Command) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discordgo.New: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	bridgeLogger(logger)

	bot := newBot(session, cfg.GuildID, tracer, logger, commands)

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)
	session.AddHandler(bot.onDisconnect)
	session.AddHandler(bot.onResumed)

	return bot, nil
}

func newBot(session *discordgo.Session, guildID string, tracer trace.Tracer, logger logrus.FieldLogger, commands []Command) *Bot {
	byName := make(map[string]Command, len(commands))
	for _, command := range commands {
		byName[command.Definition.Name] = command
	}

	return &Bot{
		session:  session,
		tracer:   tracer,
		logger:   logger,
		guildID:  guildID,
		commands: commands,
		byName:   byName,
		ctx:      context.Background(),
	}
}

// Open connects to the gateway. ctx bounds every command handled afterwards.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	b.logger.Info("Starting the bot")

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("session.Open: %w", err)
	}

	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}

	b.logger.WithFields(logrus.Fields{
		"user":    r.User.String(),
		"user_id": r.User.ID,
	}).Info("Bot is ready")

	if _, err := b.SyncCommands(s, appID); err != nil {
		b.logger.WithError(err).Error("Failed to sync commands")
	}
}

// SyncCommands replaces the registered slash commands with the bot's static
// list, for the configured guild or globally when no guild is set.
func (b *Bot) SyncCommands(syncer CommandSyncer, appID string) ([]*discordgo.ApplicationCommand, error) {
	definitions := make([]*discordgo.ApplicationCommand, 0, len(b.commands))
	for _, command := range b.commands {
		definitions = append(definitions, command.Definition)
	}

	synced, err := syncer.ApplicationCommandBulkOverwrite(appID, b.guildID, definitions)
	if err != nil {
		return nil, fmt.Errorf("syncer.ApplicationCommandBulkOverwrite: %w", err)
	}

	b.logger.WithField("count", len(synced)).Info("Commands synced")

	return synced, nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(b.ctx, s, i.Interaction)
}

// HandleInteraction runs the command matching an application command
// interaction. Failures are logged and answered with a generic ephemeral
// message.
func (b *Bot) HandleInteraction(ctx context.Context, responder Responder, interaction *discordgo.Interaction) {
	if interaction.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := interaction.ApplicationCommandData().Name

	ctx, span := b.tracer.Start(ctx, "Bot.HandleInteraction")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", name),
		attribute.String("guild_id", guildID(interaction)),
	)

	reply := NewReply(responder, interaction)

	var err error
	command, ok := b.byName[name]
	if ok {
		err = command.Handle(ctx, reply)
	} else {
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	b.logger.WithFields(logrus.Fields{
		"command":  name,
		"user_id":  userID(interaction),
		"guild_id": guildID(interaction),
	}).WithError(err).Error("Application command failed")

	if err := reply.Ephemeral(genericErrorMessage); err != nil {
		b.logger.WithError(err).WithField("command", name).Error("Failed to send the error message")
	}
}

func (b *Bot) onDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	b.logger.Warn("Bot was disconnected from Discord")
}

func (b *Bot) onResumed(s *discordgo.Session, r *discordgo.Resumed) {
	b.logger.Info("Bot resumed its Discord session")
}

func userID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}

	return ""
}

func guildID(interaction *discordgo.Interaction) string {
	if interaction.GuildID == "" {
		return "DM"
	}

	return interaction.GuildID
}
