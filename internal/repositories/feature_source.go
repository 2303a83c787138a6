package repositories

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"spotiflow/internal/models"
)

// FeatureSource is the upstream contract the cache layers over. Tracks
// absent from the returned map have no features available.
type FeatureSource interface {
	TrackFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error)
}

// CachingFeatureSource serves audio features from the local database and
// forwards only cache misses to the live source. Fetched features are
// persisted before being returned; tracks the live source cannot resolve are
// not cached, so they are retried on the next lookup.
type CachingFeatureSource struct {
	source  FeatureSource
	repo    *FeatureRepository
	service string
	logger  *log.Logger
	tracks  map[string]models.Track
}

var _ FeatureSource = (*CachingFeatureSource)(nil)

// NewCachingFeatureSource creates a cache layer for the named service
func NewCachingFeatureSource(source FeatureSource, repo *FeatureRepository, service string, logger *log.Logger) *CachingFeatureSource {
	return &CachingFeatureSource{
		source:  source,
		repo:    repo,
		service: service,
		logger:  logger,
		tracks:  make(map[string]models.Track),
	}
}

// Describe registers track metadata so persisted rows carry title and artist.
// Lookups work without it; rows for undescribed tracks store ids only.
func (c *CachingFeatureSource) Describe(tracks []models.Track) {
	for _, track := range tracks {
		c.tracks[track.ID] = track
	}
}

// TrackFeatures returns features for the given tracks, keyed by track id.
// Cached rows are served locally; the remainder is fetched from the live
// source in a single batch and stored.
func (c *CachingFeatureSource) TrackFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error) {
	features := make(map[string]models.AudioFeatures, len(trackIDs))
	var misses []string

	for _, id := range trackIDs {
		record, err := c.repo.GetByServiceID(c.service, id)
		if err != nil {
			misses = append(misses, id)
			continue
		}
		features[id] = record.Features()
	}

	if len(misses) == 0 {
		return features, nil
	}

	if c.logger != nil {
		c.logger.Debug("Fetching features from live source", "service", c.service, "hits", len(features), "misses", len(misses))
	}

	fetched, err := c.source.TrackFeatures(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio features: %w", err)
	}

	for id, f := range fetched {
		features[id] = f

		record := models.NewCachedFeatures(c.service, id, c.tracks[id], f)
		if err := c.repo.Create(record); err != nil {
			// A failed write degrades to a refetch next time.
			if c.logger != nil {
				c.logger.Warn("Failed to cache audio features", "track", id, "error", err)
			}
		}
	}

	return features, nil
}
