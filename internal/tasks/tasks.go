// package tasks implements the playlist reorder flow.
//
// The core abstraction is ReorderEngine, which orchestrates exporting a
// playlist, fetching audio features, computing a similarity ordering, and
// publishing the result as a new playlist. Operations emit progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"spotiflow/internal/models"
	"spotiflow/internal/services"
	"spotiflow/internal/shared"
	"spotiflow/internal/tour"
)

// FlowOpts contains configuration for a reorder flow run.
type FlowOpts struct {
	Seed       string  // Track id to start the ordering from (default: first track with features)
	Strict     bool    // Fail instead of appending tracks without features
	NameSuffix string  // Appended to the source name for the created playlist
	Public     bool    // Created playlist visibility
	BatchSize  int     // Track ids per feature request (default 100, capped at 100)
	RateLimit  float64 // Feature requests per second (default 5)
}

// ReorderResult contains all data from a reorder flow.
type ReorderResult struct {
	SourcePlaylist  *models.PlaylistExport // Source playlist with tracks in original order
	Ordered         []models.Track         // Tracks in similarity order
	MissingFeatures []string               // Track ids with no audio features, appended at the end
	FeaturedCount   int                    // Tracks that had features
	TotalTracks     int                    // Total tracks processed
	CreatedPlaylist *models.Playlist       // Created playlist (nil for previews)
}

// ReorderEngine defines the playlist reorder operations.
type ReorderEngine interface {
	// Preview computes the similarity ordering without creating a playlist.
	Preview(ctx context.Context, progress chan<- ProgressUpdate, idOrName string, opts FlowOpts) (*ReorderResult, error)

	// Run computes the similarity ordering and creates the reordered playlist.
	Run(ctx context.Context, progress chan<- ProgressUpdate, idOrName string, opts FlowOpts) (*ReorderResult, error)
}

// FeatureSource supplies audio features for batches of track ids. Tracks
// absent from the returned map have no features available.
type FeatureSource interface {
	TrackFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error)
}

// TrackDescriber is optionally implemented by feature sources that want
// track metadata alongside the ids they are asked about.
type TrackDescriber interface {
	Describe(tracks []models.Track)
}

// FlowEngine implements ReorderEngine against a music service and a
// feature source.
type FlowEngine struct {
	source   services.Service
	features FeatureSource
}

var _ ReorderEngine = (*FlowEngine)(nil)

// NewFlowEngine creates a FlowEngine. The feature source may be the service
// itself or a caching layer over it.
func NewFlowEngine(source services.Service, features FeatureSource) *FlowEngine {
	return &FlowEngine{
		source:   source,
		features: features,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *FlowEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Preview exports the playlist, fetches features, and computes the ordering
// without creating anything on the service.
func (e *FlowEngine) Preview(ctx context.Context, progress chan<- ProgressUpdate, idOrName string, opts FlowOpts) (*ReorderResult, error) {
	return e.reorder(ctx, progress, idOrName, opts, false)
}

// Run performs the full flow and creates the reordered playlist on the
// service, named after the source playlist plus the configured suffix.
func (e *FlowEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, idOrName string, opts FlowOpts) (*ReorderResult, error) {
	return e.reorder(ctx, progress, idOrName, opts, true)
}

func (e *FlowEngine) reorder(ctx context.Context, progress chan<- ProgressUpdate, idOrName string, opts FlowOpts, create bool) (*ReorderResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if e.features == nil {
		return nil, fmt.Errorf("%w: feature source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchingSourceUpdate(1, 1))

	export, err := e.resolvePlaylist(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if len(export.Tracks) == 0 {
		return nil, fmt.Errorf("%w: playlist '%s' has no tracks", shared.ErrEmptyPlaylist, export.Playlist.Name)
	}

	result := &ReorderResult{
		SourcePlaylist: export,
		TotalTracks:    len(export.Tracks),
	}

	e.sendProgress(progress, foundPlaylistUpdate(1, 1, export))

	features, err := e.fetchFeatures(ctx, progress, export.Tracks, opts)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, featuresFetchedUpdate(len(features), len(export.Tracks)-len(features)))
	e.sendProgress(progress, orderingTracksUpdate(len(export.Tracks)))

	model := tour.NewModel()
	byID := make(map[string]models.Track, len(export.Tracks))
	for _, track := range export.Tracks {
		byID[track.ID] = track

		var vec tour.FeatureVector
		if f, ok := features[track.ID]; ok {
			vec = tour.FromAudioFeatures(f)
		}
		if err := model.Insert(track, vec); err != nil {
			return nil, fmt.Errorf("failed to index track %s: %w", track.ID, err)
		}
	}

	var buildOpts []tour.BuildOption
	if opts.Seed != "" {
		buildOpts = append(buildOpts, tour.WithSeed(opts.Seed))
	}
	if opts.Strict {
		buildOpts = append(buildOpts, tour.Strict())
	}

	ordered, err := tour.Build(model, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to order tracks: %w", err)
	}

	result.Ordered = make([]models.Track, len(ordered))
	for i, id := range ordered {
		result.Ordered[i] = byID[id]
	}
	result.MissingFeatures = model.MissingFeatures()
	result.FeaturedCount = len(export.Tracks) - len(result.MissingFeatures)

	e.sendProgress(progress, orderedTracksUpdate(ordered))

	if !create {
		return result, nil
	}

	name := export.Playlist.Name + opts.NameSuffix
	description := fmt.Sprintf("Reordered by acoustic similarity from: %s", export.Playlist.Name)

	e.sendProgress(progress, creatingPlaylistUpdate(name))

	created, err := e.source.CreatePlaylist(ctx, name, description, opts.Public, ordered)
	if err != nil {
		return result, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrAPIRequest, err)
	}

	result.CreatedPlaylist = created
	e.sendProgress(progress, createdPlaylistUpdate(created))
	return result, nil
}

// resolvePlaylist exports a playlist by id, falling back to a name lookup
// across the user's playlists when the direct export fails.
func (e *FlowEngine) resolvePlaylist(ctx context.Context, idOrName string) (*models.PlaylistExport, error) {
	export, err := e.source.ExportPlaylist(ctx, idOrName)
	if err == nil {
		return export, nil
	}

	playlists, playlistsErr := e.source.GetPlaylists(ctx)
	if playlistsErr != nil {
		return nil, fmt.Errorf("%w: failed to get playlists: %v", shared.ErrAPIRequest, playlistsErr)
	}

	var matchedID string
	for _, pl := range playlists {
		if pl.Name == idOrName {
			matchedID = pl.ID
			break
		}
	}

	if matchedID == "" {
		return nil, fmt.Errorf("%w: no playlist found with name '%s'", shared.ErrPlaylistNotFound, idOrName)
	}

	export, err = e.source.ExportPlaylist(ctx, matchedID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to export playlist: %v", shared.ErrAPIRequest, err)
	}
	return export, nil
}

// fetchFeatures retrieves audio features for all tracks in rate-limited
// batches. Tracks the service has no features for are absent from the
// returned map.
func (e *FlowEngine) fetchFeatures(ctx context.Context, progress chan<- ProgressUpdate, tracks []models.Track, opts FlowOpts) (map[string]models.AudioFeatures, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 || batchSize > 100 {
		batchSize = 100
	}
	rateLimit := opts.RateLimit
	if rateLimit <= 0 {
		rateLimit = 5.0
	}

	if d, ok := e.features.(TrackDescriber); ok {
		d.Describe(tracks)
	}

	ids := make([]string, len(tracks))
	for i, track := range tracks {
		ids[i] = track.ID
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), 1)
	features := make(map[string]models.AudioFeatures, len(ids))

	batches := (len(ids) + batchSize - 1) / batchSize
	for i := 0; i < len(ids); i += batchSize {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("feature fetch interrupted: %w", err)
		}

		end := min(i+batchSize, len(ids))
		e.sendProgress(progress, fetchFeaturesUpdate(i/batchSize+1, batches))

		batch, err := e.features.TrackFeatures(ctx, ids[i:end])
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch audio features: %v", shared.ErrAPIRequest, err)
		}
		for id, f := range batch {
			features[id] = f
		}
	}

	return features, nil
}
