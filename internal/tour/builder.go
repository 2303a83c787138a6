package tour

import (
	"fmt"
	"strings"

	"spotiflow/internal/shared"
)

type buildOptions struct {
	seed   string
	strict bool
}

// BuildOption configures a call to [Build].
type BuildOption func(*buildOptions)

// WithSeed fixes the starting track instead of the earliest-inserted one.
func WithSeed(id string) BuildOption {
	return func(o *buildOptions) { o.seed = id }
}

// Strict makes Build fail with [shared.ErrMissingFeatures] when any track
// lacks a feature vector, instead of appending those tracks at the end.
func Strict() BuildOption {
	return func(o *buildOptions) { o.strict = true }
}

// Build orders the model's tracks with a greedy nearest-neighbor pass: start
// at the seed, then repeatedly append the unvisited track closest to the
// current one. The result is always a permutation of the model's ids.
//
// Ties on distance resolve to the candidate inserted earliest, so a fixed
// insertion order and seed give identical tours across runs. Tracks with
// absent features cannot compete and are appended at the end in insertion
// order; under [Strict] they fail the build instead. An empty model fails
// with [shared.ErrEmptyPlaylist].
func Build(m *Model, opts ...BuildOption) ([]string, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if m.Len() == 0 {
		return nil, shared.ErrEmptyPlaylist
	}

	missing := m.MissingFeatures()
	if o.strict && len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingFeatures, strings.Join(missing, ", "))
	}

	// Competitors, in insertion order.
	var remaining []string
	for _, id := range m.IDs() {
		if _, features, _ := m.Get(id); features != nil {
			remaining = append(remaining, id)
		}
	}

	seed := o.seed
	if seed == "" {
		if len(remaining) > 0 {
			seed = remaining[0]
		}
	} else {
		_, features, err := m.Get(seed)
		if err != nil {
			return nil, err
		}
		if features == nil {
			return nil, fmt.Errorf("%w: seed track %s", shared.ErrMissingFeatures, seed)
		}
	}

	// Every track is featureless: the tour degenerates to insertion order.
	if seed == "" {
		return m.IDs(), nil
	}

	solution := make([]string, 0, m.Len())
	solution = append(solution, seed)
	remaining = remove(remaining, seed)

	current := seed
	for len(remaining) > 0 {
		_, currentVec, err := m.Get(current)
		if err != nil {
			return nil, err
		}

		nearest := ""
		nearestDist := 0.0
		for _, id := range remaining {
			_, vec, err := m.Get(id)
			if err != nil {
				return nil, err
			}

			dist, err := Distance(currentVec, vec)
			if err != nil {
				return nil, err
			}

			// Strict less-than keeps the earliest-inserted candidate on ties.
			if nearest == "" || dist < nearestDist {
				nearest = id
				nearestDist = dist
			}
		}

		solution = append(solution, nearest)
		remaining = remove(remaining, nearest)
		current = nearest
	}

	// Featureless tracks close out the tour in insertion order.
	solution = append(solution, missing...)

	return solution, nil
}

func remove(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
