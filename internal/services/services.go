// package services defines interface Service for interacting with HTTP APIs
//
// Spotify (playlists, audio features), Last.fm (genre tags)
package services

import (
	"context"

	"golang.org/x/oauth2"

	"spotiflow/internal/models"
)

// Service defines the interface for a music streaming provider that can list
// playlists, export their tracks, supply audio features, and create new
// playlists.
type Service interface {
	// Authenticate performs OAuth or token authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// ExportPlaylist exports a playlist with all its tracks, in playlist order.
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)

	// TrackFeatures retrieves audio features for up to 100 track ids.
	// Tracks the service has no features for are simply missing from the
	// returned map; that absence is meaningful and must not be filled in.
	TrackFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error)

	// CreatePlaylist creates a playlist for the authenticated user and
	// populates it with the given tracks in order. The implementation is
	// responsible for chunking track additions to whatever per-call limit
	// its backing API imposes.
	CreatePlaylist(ctx context.Context, name, description string, public bool, trackIDs []string) (*models.Playlist, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2 authorization
// code flow with a local callback server.
type OAuthService interface {
	Service

	// GetAuthURL returns the provider's authorization URL for the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for callback handling.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates using previously stored tokens.
	OAuthenticate(ctx context.Context, tokens map[string]string) error
}

// GenreTagger looks up a coarse genre label for a track. Implementations
// match free-text tags from a lookup service against a fixed vocabulary.
// An empty label with a nil error means no genre could be determined.
type GenreTagger interface {
	LookupGenre(ctx context.Context, track, artist string) (string, error)
}
