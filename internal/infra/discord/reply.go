package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Reply answers a single interaction. The first message is sent as the
// interaction response, anything after that (or after Defer) as a follow-up.
type Reply struct {
	responder    Responder
	interaction  *discordgo.Interaction
	acknowledged bool
}

func NewReply(responder Responder, interaction *discordgo.Interaction) *Reply {
	return &Reply{
		responder:   responder,
		interaction: interaction,
	}
}

func (r *Reply) Acknowledged() bool {
	return r.acknowledged
}

// Defer acknowledges the interaction and shows a "thinking" state until the
// first follow-up arrives.
func (r *Reply) Defer() error {
	if r.acknowledged {
		return nil
	}

	err := r.responder.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	r.acknowledged = true

	return nil
}

func (r *Reply) Message(content string) error {
	return r.send(&discordgo.WebhookParams{Content: content})
}

// Ephemeral sends a message only the invoking user can see.
func (r *Reply) Ephemeral(content string) error {
	return r.send(&discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func (r *Reply) Embed(embed *discordgo.MessageEmbed) error {
	return r.send(&discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

// StringOption returns the value of the named string option, or "" when the
// option was not provided.
func (r *Reply) StringOption(name string) string {
	if r.interaction.Type != discordgo.InteractionApplicationCommand {
		return ""
	}

	for _, option := range r.interaction.ApplicationCommandData().Options {
		if option.Name == name && option.Type == discordgo.ApplicationCommandOptionString {
			return option.StringValue()
		}
	}

	return ""
}

func (r *Reply) Latency() time.Duration {
	return r.responder.HeartbeatLatency()
}

func (r *Reply) send(params *discordgo.WebhookParams) error {
	if r.acknowledged {
		_, err := r.responder.FollowupMessageCreate(r.interaction, true, params)
		return err
	}

	err := r.responder.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: params.Content,
			Embeds:  params.Embeds,
			Flags:   params.Flags,
		},
	})
	if err != nil {
		return err
	}

	r.acknowledged = true

	return nil
}
