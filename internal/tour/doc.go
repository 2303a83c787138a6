// Package tour implements the similarity-ordering core: tracks are described
// by fixed-dimension acoustic feature vectors, and a greedy nearest-neighbor
// pass orders a playlist so consecutive tracks are close in feature space.
//
// # Model
//
// [Model] holds one playlist's tracks with their feature vectors. Insertion
// order is kept explicitly and is part of the contract: it decides the
// default tour seed and the tie-break order, so a fixed insertion order gives
// a fully deterministic tour.
//
// A track's features may be absent (nil [FeatureVector]). Absence is a
// distinct state and never coerced to a zero vector, since a zero vector
// would fabricate similarity.
//
// # Building a tour
//
// [Build] produces a permutation of the model's track ids. Tracks without
// features are excluded from the nearest-neighbor competition and appended
// at the end in insertion order; [Strict] instead makes the build fail with
// an error naming the offending tracks.
//
// The heuristic is O(n²) time and O(n) space, which is fine for playlists
// bounded by the service's page sizes.
package tour
