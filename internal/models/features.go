package models

import (
	"fmt"
	"time"
)

// CachedFeatures is a persisted audio feature record for one track on one
// service. Rows are unique per (service, service id).
type CachedFeatures struct {
	id        string
	sequence  int
	service   string
	serviceID string
	title     string
	artist    string
	features  AudioFeatures
	createdAt time.Time
	updatedAt time.Time
}

var _ Model = (*CachedFeatures)(nil)

// NewCachedFeatures creates a cache entry for a track's audio features.
// The record's id is assigned by the repository on Create.
func NewCachedFeatures(service, serviceID string, track Track, features AudioFeatures) *CachedFeatures {
	now := time.Now()
	return &CachedFeatures{
		service:   service,
		serviceID: serviceID,
		title:     track.Title,
		artist:    track.Artist,
		features:  features,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCachedFeatures rebuilds an entity from stored column values.
func RestoreCachedFeatures(id string, sequence int, service, serviceID, title, artist string, features AudioFeatures, createdAt, updatedAt time.Time) *CachedFeatures {
	return &CachedFeatures{
		id:        id,
		sequence:  sequence,
		service:   service,
		serviceID: serviceID,
		title:     title,
		artist:    artist,
		features:  features,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *CachedFeatures) ID() string              { return c.id }
func (c *CachedFeatures) Sequence() int           { return c.sequence }
func (c *CachedFeatures) Service() string         { return c.service }
func (c *CachedFeatures) ServiceID() string       { return c.serviceID }
func (c *CachedFeatures) Title() string           { return c.title }
func (c *CachedFeatures) Artist() string          { return c.artist }
func (c *CachedFeatures) Features() AudioFeatures { return c.features }
func (c *CachedFeatures) CreatedAt() time.Time    { return c.createdAt }
func (c *CachedFeatures) UpdatedAt() time.Time    { return c.updatedAt }

func (c *CachedFeatures) SetID(id string)             { c.id = id }
func (c *CachedFeatures) SetSequence(seq int)         { c.sequence = seq }
func (c *CachedFeatures) SetUpdatedAt(t time.Time)    { c.updatedAt = t }
func (c *CachedFeatures) SetFeatures(f AudioFeatures) { c.features = f }

// Validate checks that the entity has the fields required for persistence.
func (c *CachedFeatures) Validate() error {
	if c.id == "" {
		return fmt.Errorf("cached features missing id")
	}
	if c.service == "" {
		return fmt.Errorf("cached features missing service")
	}
	if c.serviceID == "" {
		return fmt.Errorf("cached features missing service id")
	}
	return nil
}
