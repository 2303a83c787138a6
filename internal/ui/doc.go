// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for reordering a playlist:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [TrackListView] : Preview tracks in their current order
//  3. [ConfirmView] : Confirm the reorder operation
//  4. [FlowView] : Monitor real-time progress updates
//  5. [ResultView] : Display the new ordering and created playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the FlowEngine, providing non-blocking status reporting during the flow.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
