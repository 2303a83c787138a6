package repositories

import (
	"context"
	"errors"
	"testing"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

func setupTestDB(t *testing.T) *FeatureRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewFeatureRepository(db)
}

func testFeatures(tempo float64) models.AudioFeatures {
	return models.AudioFeatures{
		Danceability:     0.62,
		Energy:           0.81,
		Instrumentalness: 0.02,
		Loudness:         -5.3,
		Speechiness:      0.05,
		Tempo:            tempo,
		Valence:          0.44,
	}
}

func TestFeatureRepository(t *testing.T) {
	t.Run("Create assigns id and sequence", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "track-1", models.Track{ID: "track-1", Title: "Song", Artist: "Artist"}, testFeatures(120))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if record.ID() == "" {
			t.Error("expected generated id")
		}
		if record.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", record.Sequence())
		}

		second := models.NewCachedFeatures("spotify", "track-2", models.Track{ID: "track-2"}, testFeatures(98))
		if err := repo.Create(second); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if second.Sequence() != 2 {
			t.Errorf("expected sequence 2, got %d", second.Sequence())
		}
	})

	t.Run("Get returns stored record", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "track-1", models.Track{ID: "track-1", Title: "Song", Artist: "Artist"}, testFeatures(120))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title() != "Song" || got.Artist() != "Artist" {
			t.Errorf("unexpected metadata: %q by %q", got.Title(), got.Artist())
		}
		if got.Features().Tempo != 120 {
			t.Errorf("expected tempo 120, got %v", got.Features().Tempo)
		}
	})

	t.Run("GetByServiceID finds record by service pair", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "abc123", models.Track{ID: "abc123"}, testFeatures(140))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.GetByServiceID("spotify", "abc123")
		if err != nil {
			t.Fatalf("GetByServiceID failed: %v", err)
		}
		if got.ID() != record.ID() {
			t.Errorf("expected id %s, got %s", record.ID(), got.ID())
		}

		if _, err := repo.GetByServiceID("spotify", "missing"); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})

	t.Run("Update modifies features", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "track-1", models.Track{ID: "track-1"}, testFeatures(120))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		record.SetFeatures(testFeatures(160))
		if err := repo.Update(record); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Features().Tempo != 160 {
			t.Errorf("expected tempo 160, got %v", got.Features().Tempo)
		}
	})

	t.Run("Delete hides record from reads", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "track-1", models.Track{ID: "track-1"}, testFeatures(120))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := repo.Delete(record.ID()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.Get(record.ID()); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound after delete, got %v", err)
		}

		if err := repo.Delete(record.ID()); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound on double delete, got %v", err)
		}
	})

	t.Run("Count and Purge", func(t *testing.T) {
		repo := setupTestDB(t)

		for _, id := range []string{"a", "b", "c"} {
			record := models.NewCachedFeatures("spotify", id, models.Track{ID: id}, testFeatures(100))
			if err := repo.Create(record); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 records, got %d", count)
		}

		removed, err := repo.Purge()
		if err != nil {
			t.Fatalf("Purge failed: %v", err)
		}
		if removed != 3 {
			t.Errorf("expected 3 purged rows, got %d", removed)
		}

		count, err = repo.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty cache after purge, got %d", count)
		}
	})
}

type stubFeatureSource struct {
	features map[string]models.AudioFeatures
	calls    [][]string
	err      error
}

func (s *stubFeatureSource) TrackFeatures(_ context.Context, trackIDs []string) (map[string]models.AudioFeatures, error) {
	s.calls = append(s.calls, append([]string(nil), trackIDs...))
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[string]models.AudioFeatures)
	for _, id := range trackIDs {
		if f, ok := s.features[id]; ok {
			result[id] = f
		}
	}
	return result, nil
}

func TestCachingFeatureSource(t *testing.T) {
	t.Run("serves cached rows without hitting the live source", func(t *testing.T) {
		repo := setupTestDB(t)

		record := models.NewCachedFeatures("spotify", "a", models.Track{ID: "a"}, testFeatures(120))
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		stub := &stubFeatureSource{}
		cache := NewCachingFeatureSource(stub, repo, "spotify", nil)

		features, err := cache.TrackFeatures(context.Background(), []string{"a"})
		if err != nil {
			t.Fatalf("TrackFeatures failed: %v", err)
		}
		if len(features) != 1 || features["a"].Tempo != 120 {
			t.Errorf("unexpected cached result: %+v", features)
		}
		if len(stub.calls) != 0 {
			t.Errorf("expected no live calls, got %d", len(stub.calls))
		}
	})

	t.Run("fetches only misses and persists them", func(t *testing.T) {
		repo := setupTestDB(t)

		cached := models.NewCachedFeatures("spotify", "a", models.Track{ID: "a"}, testFeatures(120))
		if err := repo.Create(cached); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		stub := &stubFeatureSource{features: map[string]models.AudioFeatures{"b": testFeatures(90)}}
		cache := NewCachingFeatureSource(stub, repo, "spotify", nil)
		cache.Describe([]models.Track{{ID: "b", Title: "Other", Artist: "Band"}})

		features, err := cache.TrackFeatures(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("TrackFeatures failed: %v", err)
		}
		if len(features) != 2 {
			t.Fatalf("expected 2 results, got %d", len(features))
		}
		if len(stub.calls) != 1 || len(stub.calls[0]) != 1 || stub.calls[0][0] != "b" {
			t.Errorf("expected a single live call for b, got %v", stub.calls)
		}

		stored, err := repo.GetByServiceID("spotify", "b")
		if err != nil {
			t.Fatalf("expected fetched features to be persisted: %v", err)
		}
		if stored.Title() != "Other" || stored.Artist() != "Band" {
			t.Errorf("expected described metadata on stored row, got %q by %q", stored.Title(), stored.Artist())
		}
	})

	t.Run("does not cache tracks the source cannot resolve", func(t *testing.T) {
		repo := setupTestDB(t)

		stub := &stubFeatureSource{features: map[string]models.AudioFeatures{}}
		cache := NewCachingFeatureSource(stub, repo, "spotify", nil)

		features, err := cache.TrackFeatures(context.Background(), []string{"ghost"})
		if err != nil {
			t.Fatalf("TrackFeatures failed: %v", err)
		}
		if len(features) != 0 {
			t.Errorf("expected no features, got %+v", features)
		}

		// A second lookup retries the live source.
		if _, err := cache.TrackFeatures(context.Background(), []string{"ghost"}); err != nil {
			t.Fatalf("TrackFeatures failed: %v", err)
		}
		if len(stub.calls) != 2 {
			t.Errorf("expected 2 live calls, got %d", len(stub.calls))
		}
	})

	t.Run("propagates live source errors", func(t *testing.T) {
		repo := setupTestDB(t)

		stub := &stubFeatureSource{err: shared.ErrServiceUnavailable}
		cache := NewCachingFeatureSource(stub, repo, "spotify", nil)

		if _, err := cache.TrackFeatures(context.Background(), []string{"a"}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
