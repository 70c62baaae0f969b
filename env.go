package main

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID" env-required:"true"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET" env-required:"true"`

	DiscordBotToken string `env:"DISCORD_BOT_TOKEN" env-required:"true"`
	DiscordGuildID  string `env:"DISCORD_GUILD_ID"`

	Port string `env:"PORT" env-default:"1323"`

	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var env Env

func LoadEnv() error {
	err := godotenv.Load()
	if err != nil {
		logrus.WithError(err).Warn("Failed to load env variables from file")
	}

	return cleanenv.ReadEnv(&env)
}

func GetEnv() *Env {
	return &env
}
