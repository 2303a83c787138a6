package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

type mockService struct {
	name            string
	playlists       []models.Playlist
	playlistExports map[string]*models.PlaylistExport
	features        map[string]models.AudioFeatures
	created         []createdPlaylist
	exportCallCount int
	featureCalls    [][]string
	getPlaylistsErr error
	exportErr       error
	exportErrOnce   bool // If true, only fail first export call
	featuresErr     error
	createErr       error
}

type createdPlaylist struct {
	name        string
	description string
	public      bool
	trackIDs    []string
}

func (m *mockService) Name() string { return m.name }

func (m *mockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *mockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.getPlaylistsErr != nil {
		return nil, m.getPlaylistsErr
	}
	return m.playlists, nil
}

func (m *mockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if export, ok := m.playlistExports[playlistID]; ok {
		return &export.Playlist, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
}

func (m *mockService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	m.exportCallCount++
	if m.exportErr != nil && (!m.exportErrOnce || m.exportCallCount == 1) {
		return nil, m.exportErr
	}
	if export, ok := m.playlistExports[playlistID]; ok {
		return export, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
}

func (m *mockService) TrackFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error) {
	m.featureCalls = append(m.featureCalls, append([]string(nil), trackIDs...))
	if m.featuresErr != nil {
		return nil, m.featuresErr
	}
	result := make(map[string]models.AudioFeatures)
	for _, id := range trackIDs {
		if f, ok := m.features[id]; ok {
			result[id] = f
		}
	}
	return result, nil
}

func (m *mockService) CreatePlaylist(ctx context.Context, name, description string, public bool, trackIDs []string) (*models.Playlist, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, createdPlaylist{name, description, public, append([]string(nil), trackIDs...)})
	return &models.Playlist{ID: "created-id", Name: name, Public: public, TrackCount: len(trackIDs)}, nil
}

func featuresAt(energy float64) models.AudioFeatures {
	return models.AudioFeatures{Energy: energy}
}

// testExport builds a three track playlist where the similarity ordering
// differs from the original order: a(0.0), b(0.9), c(0.1) reorders to a, c, b.
func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{ID: "pl1", Name: "Road Trip", TrackCount: 3},
		Tracks: []models.Track{
			{ID: "a", Title: "Opener", Artist: "Band"},
			{ID: "b", Title: "Closer", Artist: "Band"},
			{ID: "c", Title: "Bridge", Artist: "Band"},
		},
	}
}

func testService() *mockService {
	return &mockService{
		name:            "Spotify",
		playlists:       []models.Playlist{{ID: "pl1", Name: "Road Trip"}},
		playlistExports: map[string]*models.PlaylistExport{"pl1": testExport()},
		features: map[string]models.AudioFeatures{
			"a": featuresAt(0.0),
			"b": featuresAt(0.9),
			"c": featuresAt(0.1),
		},
	}
}

func orderedIDs(result *ReorderResult) []string {
	ids := make([]string, len(result.Ordered))
	for i, track := range result.Ordered {
		ids[i] = track.ID
	}
	return ids
}

func TestFlowEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Preview computes ordering without creating a playlist", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Preview(ctx, nil, "pl1", FlowOpts{})
		if err != nil {
			t.Fatalf("Preview failed: %v", err)
		}

		want := []string{"a", "c", "b"}
		got := orderedIDs(result)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
		if result.CreatedPlaylist != nil {
			t.Error("preview must not create a playlist")
		}
		if len(svc.created) != 0 {
			t.Errorf("expected no created playlists, got %d", len(svc.created))
		}
		if result.FeaturedCount != 3 || result.TotalTracks != 3 {
			t.Errorf("unexpected counts: featured=%d total=%d", result.FeaturedCount, result.TotalTracks)
		}
	})

	t.Run("Run creates the reordered playlist with suffix", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Run(ctx, nil, "pl1", FlowOpts{NameSuffix: " - Improved", Public: true})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if result.CreatedPlaylist == nil {
			t.Fatal("expected a created playlist")
		}
		if result.CreatedPlaylist.Name != "Road Trip - Improved" {
			t.Errorf("unexpected playlist name: %s", result.CreatedPlaylist.Name)
		}
		if len(svc.created) != 1 {
			t.Fatalf("expected 1 created playlist, got %d", len(svc.created))
		}
		if !svc.created[0].public {
			t.Error("expected public playlist")
		}

		want := []string{"a", "c", "b"}
		for i, id := range svc.created[0].trackIDs {
			if id != want[i] {
				t.Fatalf("expected created order %v, got %v", want, svc.created[0].trackIDs)
			}
		}
	})

	t.Run("resolves playlist by name when id export fails", func(t *testing.T) {
		svc := testService()
		svc.exportErr = fmt.Errorf("%w: bad id", shared.ErrPlaylistNotFound)
		svc.exportErrOnce = true
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Preview(ctx, nil, "Road Trip", FlowOpts{})
		if err != nil {
			t.Fatalf("Preview failed: %v", err)
		}
		if result.SourcePlaylist.Playlist.ID != "pl1" {
			t.Errorf("expected playlist pl1, got %s", result.SourcePlaylist.Playlist.ID)
		}
		if svc.exportCallCount != 2 {
			t.Errorf("expected 2 export calls, got %d", svc.exportCallCount)
		}
	})

	t.Run("unknown name returns ErrPlaylistNotFound", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		if _, err := engine.Preview(ctx, nil, "No Such List", FlowOpts{}); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("empty playlist returns ErrEmptyPlaylist", func(t *testing.T) {
		svc := testService()
		svc.playlistExports["empty"] = &models.PlaylistExport{
			Playlist: models.Playlist{ID: "empty", Name: "Empty"},
		}
		engine := NewFlowEngine(svc, svc)

		if _, err := engine.Preview(ctx, nil, "empty", FlowOpts{}); !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}
	})

	t.Run("tracks without features are appended", func(t *testing.T) {
		svc := testService()
		delete(svc.features, "b")
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Preview(ctx, nil, "pl1", FlowOpts{})
		if err != nil {
			t.Fatalf("Preview failed: %v", err)
		}

		want := []string{"a", "c", "b"}
		got := orderedIDs(result)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
		if len(result.MissingFeatures) != 1 || result.MissingFeatures[0] != "b" {
			t.Errorf("expected missing [b], got %v", result.MissingFeatures)
		}
		if result.FeaturedCount != 2 {
			t.Errorf("expected 2 featured tracks, got %d", result.FeaturedCount)
		}
	})

	t.Run("strict mode fails on missing features", func(t *testing.T) {
		svc := testService()
		delete(svc.features, "b")
		engine := NewFlowEngine(svc, svc)

		if _, err := engine.Preview(ctx, nil, "pl1", FlowOpts{Strict: true}); !errors.Is(err, shared.ErrMissingFeatures) {
			t.Errorf("expected ErrMissingFeatures, got %v", err)
		}
	})

	t.Run("explicit seed changes the starting track", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Preview(ctx, nil, "pl1", FlowOpts{Seed: "b"})
		if err != nil {
			t.Fatalf("Preview failed: %v", err)
		}
		if got := orderedIDs(result); got[0] != "b" {
			t.Errorf("expected seed b first, got %v", got)
		}
	})

	t.Run("feature requests are batched", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		if _, err := engine.Preview(ctx, nil, "pl1", FlowOpts{BatchSize: 2, RateLimit: 1000}); err != nil {
			t.Fatalf("Preview failed: %v", err)
		}
		if len(svc.featureCalls) != 2 {
			t.Fatalf("expected 2 feature batches, got %d", len(svc.featureCalls))
		}
		if len(svc.featureCalls[0]) != 2 || len(svc.featureCalls[1]) != 1 {
			t.Errorf("unexpected batch sizes: %v", svc.featureCalls)
		}
	})

	t.Run("feature fetch errors abort the flow", func(t *testing.T) {
		svc := testService()
		svc.featuresErr = shared.ErrServiceUnavailable
		engine := NewFlowEngine(svc, svc)

		if _, err := engine.Preview(ctx, nil, "pl1", FlowOpts{}); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("create errors still return the computed ordering", func(t *testing.T) {
		svc := testService()
		svc.createErr = shared.ErrServiceUnavailable
		engine := NewFlowEngine(svc, svc)

		result, err := engine.Run(ctx, nil, "pl1", FlowOpts{})
		if err == nil {
			t.Fatal("expected error from create failure")
		}
		if result == nil || len(result.Ordered) != 3 {
			t.Error("expected ordering to survive create failure")
		}
	})

	t.Run("progress updates are emitted without blocking", func(t *testing.T) {
		svc := testService()
		engine := NewFlowEngine(svc, svc)

		progress := make(chan ProgressUpdate, 32)
		if _, err := engine.Run(ctx, progress, "pl1", FlowOpts{NameSuffix: " - Improved"}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		close(progress)

		phases := make(map[Phase]bool)
		for update := range progress {
			phases[update.Phase] = true
		}
		for _, phase := range []Phase{FetchSource, FetchFeatures, OrderTracks, CreatePlaylist} {
			if !phases[phase] {
				t.Errorf("expected a %s update", phase)
			}
		}
	})

	t.Run("nil service is rejected", func(t *testing.T) {
		engine := NewFlowEngine(nil, nil)
		if _, err := engine.Preview(ctx, nil, "pl1", FlowOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
