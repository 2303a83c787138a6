package tour

import (
	"errors"
	"testing"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

func track(id string) models.Track {
	return models.Track{ID: id, Title: "Track " + id, Artist: "Artist"}
}

func vec(first float64) FeatureVector {
	return FeatureVector{first, 0, 0, 0, 0, 0, 0}
}

func TestModel(t *testing.T) {
	t.Run("Insert And Get", func(t *testing.T) {
		m := NewModel()

		if err := m.Insert(track("a"), vec(1)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := m.Insert(track("b"), nil); err != nil {
			t.Fatalf("expected no error for absent features, got %v", err)
		}

		tr, features, err := m.Get("a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tr.ID != "a" || features == nil {
			t.Error("expected stored track with features")
		}

		_, features, err = m.Get("b")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if features != nil {
			t.Error("expected absent features to stay nil, not a zero vector")
		}
	})

	t.Run("Duplicate Track", func(t *testing.T) {
		m := NewModel()
		m.Insert(track("a"), vec(1))

		if err := m.Insert(track("a"), vec(2)); !errors.Is(err, shared.ErrDuplicateTrack) {
			t.Errorf("expected ErrDuplicateTrack, got %v", err)
		}
		if m.Len() != 1 {
			t.Errorf("expected rejected insert to leave model unchanged, len = %d", m.Len())
		}
	})

	t.Run("Unknown Track", func(t *testing.T) {
		m := NewModel()
		if _, _, err := m.Get("ghost"); !errors.Is(err, shared.ErrUnknownTrack) {
			t.Errorf("expected ErrUnknownTrack, got %v", err)
		}
	})

	t.Run("Empty Track ID", func(t *testing.T) {
		m := NewModel()
		if err := m.Insert(models.Track{}, nil); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Invalid Dimension On Insert", func(t *testing.T) {
		m := NewModel()
		if err := m.Insert(track("a"), FeatureVector{1, 2, 3}); !errors.Is(err, shared.ErrInvalidDimension) {
			t.Errorf("expected ErrInvalidDimension, got %v", err)
		}
	})

	t.Run("First", func(t *testing.T) {
		m := NewModel()

		if _, err := m.First(); !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}

		m.Insert(track("first"), vec(1))
		m.Insert(track("second"), vec(2))

		id, err := m.First()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "first" {
			t.Errorf("expected earliest-inserted id, got %s", id)
		}
	})

	t.Run("IDs Preserve Insertion Order", func(t *testing.T) {
		m := NewModel()
		for _, id := range []string{"c", "a", "b"} {
			m.Insert(track(id), vec(1))
		}

		ids := m.IDs()
		want := []string{"c", "a", "b"}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, ids)
			}
		}

		// Returned slice is a copy.
		ids[0] = "mutated"
		if m.IDs()[0] != "c" {
			t.Error("expected IDs to return a copy")
		}
	})

	t.Run("MissingFeatures", func(t *testing.T) {
		m := NewModel()
		m.Insert(track("a"), vec(1))
		m.Insert(track("b"), nil)
		m.Insert(track("c"), nil)

		missing := m.MissingFeatures()
		if len(missing) != 2 || missing[0] != "b" || missing[1] != "c" {
			t.Errorf("expected [b c], got %v", missing)
		}
	})
}
