package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

// FeatureRepository implements models.Repository[*models.CachedFeatures] for
// the audio feature cache.
//
// Rows are unique per (service, service_id); soft deletes keep history until
// a purge.
type FeatureRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedFeatures] = (*FeatureRepository)(nil)

// NewFeatureRepository creates a new FeatureRepository with the given database connection
func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

const featureColumns = `id, sequence, service, service_id, title, artist,
	danceability, energy, instrumentalness, loudness, speechiness, tempo, valence,
	created_at, updated_at`

// Create inserts a new feature record with generated ID and sequence
func (r *FeatureRepository) Create(record *models.CachedFeatures) error {
	sequence, err := NextSequence(r.db, "track_features")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	record.SetID(shared.GenerateID())
	record.SetSequence(sequence)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	f := record.Features()
	query := `
		INSERT INTO track_features (` + featureColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID(),
		record.Sequence(),
		record.Service(),
		record.ServiceID(),
		record.Title(),
		record.Artist(),
		f.Danceability,
		f.Energy,
		f.Instrumentalness,
		f.Loudness,
		f.Speechiness,
		f.Tempo,
		f.Valence,
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feature record: %w", err)
	}

	return nil
}

// Get retrieves a feature record by ID, excluding soft-deleted rows
func (r *FeatureRepository) Get(id string) (*models.CachedFeatures, error) {
	query := `
		SELECT ` + featureColumns + `
		FROM track_features
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByServiceID retrieves a feature record by service and service_id
func (r *FeatureRepository) GetByServiceID(service, serviceID string) (*models.CachedFeatures, error) {
	query := `
		SELECT ` + featureColumns + `
		FROM track_features
		WHERE service = ? AND service_id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, service, serviceID))
}

// Update modifies an existing feature record
func (r *FeatureRepository) Update(record *models.CachedFeatures) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	record.SetUpdatedAt(now)

	f := record.Features()
	query := `
		UPDATE track_features
		SET title = ?, artist = ?, danceability = ?, energy = ?, instrumentalness = ?,
			loudness = ?, speechiness = ?, tempo = ?, valence = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		record.Title(),
		record.Artist(),
		f.Danceability,
		f.Energy,
		f.Instrumentalness,
		f.Loudness,
		f.Speechiness,
		f.Tempo,
		f.Valence,
		now,
		record.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update feature record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, record.ID())
	}

	return nil
}

// Delete soft-deletes a feature record by ID
func (r *FeatureRepository) Delete(id string) error {
	result, err := r.db.Exec(
		"UPDATE track_features SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete feature record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}

	return nil
}

// Count returns the number of live cached records
func (r *FeatureRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM track_features WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count feature records: %w", err)
	}
	return count, nil
}

// Purge permanently removes all cached records
func (r *FeatureRepository) Purge() (int, error) {
	result, err := r.db.Exec("DELETE FROM track_features")
	if err != nil {
		return 0, fmt.Errorf("failed to purge feature cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}

func (r *FeatureRepository) scanOne(row *sql.Row) (*models.CachedFeatures, error) {
	var (
		id, service, serviceID, title, artist string
		sequence                              int
		f                                     models.AudioFeatures
		createdAt, updatedAt                  time.Time
	)

	err := row.Scan(
		&id, &sequence, &service, &serviceID, &title, &artist,
		&f.Danceability, &f.Energy, &f.Instrumentalness, &f.Loudness,
		&f.Speechiness, &f.Tempo, &f.Valence,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no cached features", shared.ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan feature record: %w", err)
	}

	return models.RestoreCachedFeatures(id, sequence, service, serviceID, title, artist, f, createdAt, updatedAt), nil
}
