// Package services defines the [Service] interface for music streaming providers and implements it for Spotify,
// plus the optional [GenreTagger] contract implemented for Last.fm.
//
// # Service Interface
//
// The provider abstraction covers everything the reorder flow needs from the
// outside world: playlist listing and export, audio feature retrieval, and
// playlist creation.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token refresh via [oauth2.Config.Client].
// Playlist exports paginate through /playlists/{id}/tracks; audio features come
// from /audio-features in batches of up to 100 ids. Playlist creation posts to
// /users/{id}/playlists, then adds tracks in chunks of 100 (the API cap), so
// callers never have to care about the limit.
//
// # OAuth Service Extension
//
// The [OAuthService] interface extends Service for OAuth providers used with
// the local callback server in internal/server.
//
// # Last.fm Implementation
//
// [LastFMService] resolves a track's Last.fm top tags against a fixed
// eight-genre vocabulary. It sits outside the reorder path and is only used
// by the genre subcommand.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : Playlist ID not found
package services
