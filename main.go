package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/angristan/spotify-search-bot/internal/infra/discord"
	server "github.com/angristan/spotify-search-bot/internal/infra/http"
	handler "github.com/angristan/spotify-search-bot/internal/infra/http/handlers/spotify"
	repospotify "github.com/angristan/spotify-search-bot/internal/infra/repository/spotify"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

func main() {
	err := LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load environment variables")
	}

	config := GetEnv()
	setupLogging(config.LogFormat, config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.OTLPEndpoint != "" {
		spanExporter, err := newSpanExporter(ctx, config.OTLPEndpoint)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create span exporter")
		}
		tracerProvider, err := newTracerProvider(spanExporter)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create tracer provider")
		}
		otel.SetTracerProvider(tracerProvider)
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logrus.WithError(err).Error("Failed to shutdown tracer provider")
			}
		}()
	}
	tracer := otel.Tracer(serviceName)

	spotifyClient, err := repospotify.New(
		repospotify.NewSpotifyClientConfig(
			config.SpotifyClientID,
			config.SpotifyClientSecret,
			&http.Client{},
			tracer,
		),
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Spotify client")
	}

	searchService := appspotify.New(tracer, spotifyClient)

	bot, err := discord.New(
		discord.NewConfig(config.DiscordBotToken, config.DiscordGuildID),
		tracer,
		logrus.StandardLogger(),
		discord.Commands(searchService, logrus.StandardLogger()),
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Discord bot")
	}

	if err := bot.Open(ctx); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to Discord")
	}
	defer func() {
		if err := bot.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close Discord session")
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	httpServer, err := server.New(
		server.NewConfig(config.Port, false),
		handler.New(tracer, searchService),
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create HTTP server")
	}

	go func() {
		logrus.WithField("addr", httpServer.Addr).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Failed to shutdown HTTP server")
	}
}
