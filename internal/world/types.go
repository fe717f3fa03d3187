package world

import (
	"time"
)

const (
	ChunkSize = 32

	// Terrain types derived from sampled height and moisture
	Water  = 1
	Sand   = 2
	Grass  = 3
	Forest = 4
	Rock   = 5
)

// World is the API view of a persisted noise parameter set.
type World struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Seed       int64     `json:"seed"`
	Octaves    int       `json:"octaves"`
	Lacunarity float64   `json:"lacunarity"`
	Gain       float64   `json:"gain"`
	Frequency  float64   `json:"frequency"`
	Normalize  bool      `json:"normalize"`
	Variant    string    `json:"variant"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateWorldRequest carries the caller-supplied parameters for a new world.
// Zero-valued tuning knobs fall back to the configured defaults.
type CreateWorldRequest struct {
	Name       string  `json:"name"`
	Seed       int64   `json:"seed"`
	Octaves    int     `json:"octaves"`
	Lacunarity float64 `json:"lacunarity"`
	Gain       float64 `json:"gain"`
	Frequency  float64 `json:"frequency"`
	Normalize  bool    `json:"normalize"`
	Variant    string  `json:"variant"`
}

// SampleResult is one noise evaluation at a point.
type SampleResult struct {
	WorldID    int64    `json:"world_id"`
	Dimensions int      `json:"dimensions"`
	X          float64  `json:"x"`
	Y          *float64 `json:"y,omitempty"`
	Z          *float64 `json:"z,omitempty"`
	Value      float64  `json:"value"`
}

// Chunk is a sampled height grid with per-cell terrain classification.
// Heights and terrain are indexed [z][x].
type Chunk struct {
	WorldID int64       `json:"world_id"`
	ChunkX  int64       `json:"chunk_x"`
	ChunkZ  int64       `json:"chunk_z"`
	Size    int         `json:"size"`
	Heights [][]float64 `json:"heights"`
	Terrain [][]int     `json:"terrain"`
}
