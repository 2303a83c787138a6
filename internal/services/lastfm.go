// Last.fm implementation of [GenreTagger]
//
// Uses the track.getInfo method: https://www.last.fm/api/show/track.getInfo
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"spotiflow/internal/shared"
)

const lastFMBaseURL = "http://ws.audioscrobbler.com/2.0/"

// genreVocabulary is the closed set of labels a track can be tagged with.
// Free-text Last.fm tags are matched against it by case-insensitive
// substring containment in either direction.
var genreVocabulary = []string{
	"electronic",
	"jazz",
	"hip hop",
	"pop",
	"rock",
	"alternative rock",
	"metal",
	"indie",
}

// LastFMService implements [GenreTagger] over the Last.fm web API.
type LastFMService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ GenreTagger = (*LastFMService)(nil)

// NewLastFMService creates a Last.fm tagger. The base URL defaults to the
// public audioscrobbler endpoint.
func NewLastFMService(apiKey, baseURL string, client *http.Client) *LastFMService {
	if baseURL == "" {
		baseURL = lastFMBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &LastFMService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
	}
}

type lastFMTag struct {
	Name string `json:"name"`
}

type lastFMTrackInfo struct {
	Track *struct {
		TopTags struct {
			Tag []lastFMTag `json:"tag"`
		} `json:"toptags"`
	} `json:"track"`
}

// LookupGenre returns the first vocabulary genre matched by the track's
// Last.fm top tags, or "" when the track is unknown or no tag matches.
func (s *LastFMService) LookupGenre(ctx context.Context, track, artist string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: missing Last.fm api key", shared.ErrMissingCredentials)
	}

	query := url.Values{}
	query.Set("method", "track.getInfo")
	query.Set("api_key", s.apiKey)
	query.Set("artist", artist)
	query.Set("track", track)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: last.fm status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var info lastFMTrackInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// Unknown track or no tags: genre is simply unavailable.
	if info.Track == nil {
		return "", nil
	}

	for _, tag := range info.Track.TopTags.Tag {
		name := strings.ToLower(tag.Name)
		for _, genre := range genreVocabulary {
			if strings.Contains(genre, name) || strings.Contains(name, genre) {
				return genre, nil
			}
		}
	}

	return "", nil
}
