package spotify

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Search returns at most MaxResults tracks matching query. An empty result
// is reported as ErrNoResultsFound.
func (s SpotifySearchService) Search(ctx context.Context, query string) ([]Track, error) {
	ctx, span := s.tracer.Start(ctx, "SpotifySearchService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	span.SetAttributes(attribute.String("query", query))

	result, err := s.spotifyClient.SearchTrack(ctx, query, MaxResults)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrSpotifyClient, err)
	}

	if result == nil || result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return nil, ErrNoResultsFound
	}

	items := result.Tracks.Tracks
	if len(items) > MaxResults {
		items = items[:MaxResults]
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, newTrack(item))
	}
	span.SetAttributes(attribute.Int("results", len(tracks)))

	return tracks, nil
}
