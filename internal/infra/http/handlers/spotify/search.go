package spotify

import (
	"errors"
	"net/http"
	"strings"

	appspotify "github.com/angristan/spotify-search-bot/internal/app/services/spotify"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (h *SpotifyHandler) Search(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "SpotifyHandler.Search")
	defer span.End()

	// The wildcard keeps its leading slash.
	query := strings.TrimPrefix(c.Param("query"), "/")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	span.SetAttributes(attribute.String("query", query))

	tracks, err := h.spotifySearchService.Search(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		switch {
		case errors.Is(err, appspotify.ErrEmptyQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		case errors.Is(err, appspotify.ErrNoResultsFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no results found"})
		case errors.Is(err, appspotify.ErrSpotifyClient):
			logrus.WithError(err).WithField("query", query).Error("Spotify search failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "spotify client error"})
		default:
			logrus.WithError(err).WithField("query", query).Error("Unexpected search error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, tracks)
}
