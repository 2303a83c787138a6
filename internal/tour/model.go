package tour

import (
	"fmt"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

type entry struct {
	track    models.Track
	features FeatureVector // nil when absent
}

// Model maps track ids to display metadata and feature state for one
// playlist, preserving insertion order.
//
// The order is kept as an explicit slice alongside the lookup map rather
// than relying on any incidental map iteration guarantee. The first inserted
// id is the default tour seed, so callers wanting reproducible tours insert
// tracks in a fixed order (the playlist's own order, typically).
type Model struct {
	order   []string
	entries map[string]entry
}

// NewModel creates an empty playlist model.
func NewModel() *Model {
	return &Model{entries: make(map[string]entry)}
}

// Insert adds a track with its features, or with nil features when the
// descriptor is absent. Fails with [shared.ErrDuplicateTrack] when the id is
// already present and [shared.ErrInvalidDimension] when a non-absent vector
// has the wrong length.
func (m *Model) Insert(track models.Track, features FeatureVector) error {
	if track.ID == "" {
		return fmt.Errorf("%w: track id is empty", shared.ErrInvalidInput)
	}
	if _, exists := m.entries[track.ID]; exists {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateTrack, track.ID)
	}
	if features != nil && len(features) != Dimensions {
		return fmt.Errorf("%w: track %s has %d values, want %d", shared.ErrInvalidDimension, track.ID, len(features), Dimensions)
	}

	m.order = append(m.order, track.ID)
	m.entries[track.ID] = entry{track: track, features: features}
	return nil
}

// Get returns a track's metadata and features (nil when absent).
// Fails with [shared.ErrUnknownTrack] for ids never inserted.
func (m *Model) Get(id string) (models.Track, FeatureVector, error) {
	e, ok := m.entries[id]
	if !ok {
		return models.Track{}, nil, fmt.Errorf("%w: %s", shared.ErrUnknownTrack, id)
	}
	return e.track, e.features, nil
}

// First returns the earliest-inserted track id.
// Fails with [shared.ErrEmptyPlaylist] when the model holds no tracks.
func (m *Model) First() (string, error) {
	if len(m.order) == 0 {
		return "", shared.ErrEmptyPlaylist
	}
	return m.order[0], nil
}

// IDs returns all track ids in insertion order.
func (m *Model) IDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Len returns the number of tracks in the model.
func (m *Model) Len() int {
	return len(m.order)
}

// MissingFeatures returns the ids of tracks with absent features, in
// insertion order.
func (m *Model) MissingFeatures() []string {
	var missing []string
	for _, id := range m.order {
		if m.entries[id].features == nil {
			missing = append(missing, id)
		}
	}
	return missing
}
