package ui

import (
	"spotiflow/internal/models"
	"spotiflow/internal/tasks"
)

// playlistsFetchedMsg carries the user's playlists (or the fetch error).
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// tracksFetchedMsg carries a playlist export for the track preview.
type tracksFetchedMsg struct {
	playlist *models.PlaylistExport
	err      error
}

// progressUpdateMsg wraps a flow progress event.
type progressUpdateMsg tasks.ProgressUpdate

// flowCompleteMsg carries the final reorder result.
type flowCompleteMsg struct {
	result *tasks.ReorderResult
	err    error
}
