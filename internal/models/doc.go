// Package models defines domain entities and persistence interfaces for the spotiflow playlist reorder service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Playlist] : Basic playlist metadata from the streaming service
//   - [PlaylistExport] : Playlist with complete track listing
//   - [Track] : Song metadata used for display and genre lookup
//   - [AudioFeatures] : Named acoustic descriptor fields, projected into a fixed-order vector
//
// 2. Persistent Entities: Database-backed models
//   - [CachedFeatures] : Audio features cached per (service, service id) pair
//
// Persistent entities implement the Model interface providing ID generation, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
