package discord

import "errors"

// TokenPlaceholder is the value shipped in the example .env file.
const TokenPlaceholder = "YOUR_DISCORD_BOT_TOKEN"

var ErrMissingToken = errors.New("discord bot token is missing or has not been configured")

type Config struct {
	Token   string
	GuildID string
}

func NewConfig(token string, guildID string) Config {
	return Config{
		Token:   token,
		GuildID: guildID,
	}
}

func (c Config) Validate() error {
	if c.Token == "" || c.Token == TokenPlaceholder {
		return ErrMissingToken
	}

	return nil
}
