package tour

import (
	"fmt"
	"math"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
)

// Dimensions is the number of acoustic axes in a feature vector.
const Dimensions = 7

// Axes lists the semantic axes in vector order.
var Axes = [Dimensions]string{
	"danceability",
	"energy",
	"instrumentalness",
	"loudness",
	"speechiness",
	"tempo",
	"valence",
}

// FeatureVector is a track's acoustic descriptor: exactly [Dimensions] real
// values in the order given by [Axes]. A nil FeatureVector means the
// descriptor is absent, which is distinct from a zero-valued one.
type FeatureVector []float64

// NewFeatureVector validates and wraps a raw value sequence.
func NewFeatureVector(values []float64) (FeatureVector, error) {
	if len(values) != Dimensions {
		return nil, fmt.Errorf("%w: got %d values, want %d", shared.ErrInvalidDimension, len(values), Dimensions)
	}
	v := make(FeatureVector, Dimensions)
	copy(v, values)
	return v, nil
}

// FromAudioFeatures projects a [models.AudioFeatures] record into a vector.
func FromAudioFeatures(f models.AudioFeatures) FeatureVector {
	return FeatureVector(f.Vector())
}

// Distance computes the Euclidean (L2) distance between two feature vectors.
//
// It is symmetric, non-negative, and zero for identical vectors. Both
// operands must have exactly [Dimensions] components; absence must be
// resolved by the caller before calling Distance.
func Distance(a, b FeatureVector) (float64, error) {
	if len(a) != Dimensions {
		return 0, fmt.Errorf("%w: left operand has %d values, want %d", shared.ErrInvalidDimension, len(a), Dimensions)
	}
	if len(b) != Dimensions {
		return 0, fmt.Errorf("%w: right operand has %d values, want %d", shared.ErrInvalidDimension, len(b), Dimensions)
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
