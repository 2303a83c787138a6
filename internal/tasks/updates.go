package tasks

import (
	"fmt"

	"spotiflow/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	FetchFeatures
	OrderTracks
	CreatePlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case FetchFeatures:
		return "fetch_features"
	case OrderTracks:
		return "order_tracks"
	case CreatePlaylist:
		return "create_playlist"
	default:
		return ""
	}
}

func fetchingSourceUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: "Fetching source playlist from Spotify...",
	}
}

func foundPlaylistUpdate(step, total int, export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", export.Playlist.Name, len(export.Tracks)),
		Data:    export,
	}
}

func fetchFeaturesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeatures,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching audio features...", step, total),
	}
}

func featuresFetchedUpdate(found, missing int) ProgressUpdate {
	total := found + missing
	return ProgressUpdate{
		Phase:   FetchFeatures,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Audio features: %d found, %d missing", found, missing),
	}
}

func orderingTracksUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OrderTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Ordering %d tracks by acoustic similarity...", total),
	}
}

func orderedTracksUpdate(ordered []string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OrderTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Computed ordering for %d tracks", len(ordered)),
		Data:    ordered,
	}
}

func creatingPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist: %s...", name),
	}
}

func createdPlaylistUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}
