// Package world manages persisted noise parameter sets and the sampling
// operations layered on them: point samples and chunked height grids.
package world

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/log"
	"github.com/dgravesa/go-parallel/parallel"

	"github.com/FractalMesh/api/internal/config"
	"github.com/FractalMesh/api/internal/db"
	"github.com/FractalMesh/api/internal/noise"
)

// ErrWorldNotFound is returned when a world id has no persisted row.
var ErrWorldNotFound = errors.New("world not found")

// worldEntry caches the immutable sampling state derived from a world row:
// the engine config (permutation tables included) and the secondary
// moisture field used by terrain classification. Built once per world,
// shared by all concurrent samplers.
type worldEntry struct {
	cfg      *noise.Config
	moisture *perlin.Perlin
}

type Manager struct {
	store    *db.Store
	defaults config.NoiseConfig

	mu    sync.RWMutex
	cache map[int64]*worldEntry
}

func NewManager(database *sql.DB, defaults config.NoiseConfig) *Manager {
	return &Manager{
		store:    db.NewStore(database),
		defaults: defaults,
		cache:    make(map[int64]*worldEntry),
	}
}

// CreateWorld validates the requested parameters by building an engine
// config from them, then persists the world. Invalid parameters never reach
// the database.
func (m *Manager) CreateWorld(ctx context.Context, req CreateWorldRequest) (*World, error) {
	m.applyDefaults(&req)

	variant, err := noise.ParseVariant(req.Variant)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", noise.ErrInvalidParameter)
	}

	if _, err := noise.New(noise.Params{
		Seed:       req.Seed,
		Octaves:    req.Octaves,
		Lacunarity: req.Lacunarity,
		Gain:       req.Gain,
		Frequency:  req.Frequency,
		Normalize:  req.Normalize,
		Variant:    variant,
	}); err != nil {
		return nil, err
	}

	id, err := m.store.CreateWorld(ctx, db.World{
		Name:       req.Name,
		Seed:       req.Seed,
		Octaves:    int64(req.Octaves),
		Lacunarity: req.Lacunarity,
		Gain:       req.Gain,
		Frequency:  req.Frequency,
		Normalize:  req.Normalize,
		Variant:    variant.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	log.Info("World created", "world_id", id, "name", req.Name, "seed", req.Seed, "variant", variant)
	return m.GetWorld(ctx, id)
}

func (m *Manager) applyDefaults(req *CreateWorldRequest) {
	if req.Octaves == 0 {
		req.Octaves = m.defaults.Octaves
	}
	if req.Lacunarity == 0 {
		req.Lacunarity = m.defaults.Lacunarity
	}
	if req.Gain == 0 {
		req.Gain = m.defaults.Gain
	}
	if req.Frequency == 0 {
		req.Frequency = m.defaults.Frequency
	}
	if req.Variant == "" {
		req.Variant = m.defaults.Variant
	}
}

func (m *Manager) GetWorld(ctx context.Context, id int64) (*World, error) {
	row, err := m.store.GetWorld(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get world: %w", err)
	}
	w := fromRow(row)
	return &w, nil
}

func (m *Manager) ListWorlds(ctx context.Context) ([]World, error) {
	rows, err := m.store.ListWorlds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	worlds := make([]World, len(rows))
	for i, row := range rows {
		worlds[i] = fromRow(row)
	}
	return worlds, nil
}

func (m *Manager) DeleteWorld(ctx context.Context, id int64) error {
	deleted, err := m.store.DeleteWorld(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete world: %w", err)
	}
	if !deleted {
		return ErrWorldNotFound
	}

	m.mu.Lock()
	delete(m.cache, id)
	m.mu.Unlock()

	log.Info("World deleted", "world_id", id)
	return nil
}

// SampleAt evaluates the world's fractal at a point. coords holds 1 to 3
// active dimensions.
func (m *Manager) SampleAt(ctx context.Context, id int64, coords []float64) (*SampleResult, error) {
	if len(coords) < 1 || len(coords) > 3 {
		return nil, fmt.Errorf("%w: expected 1 to 3 coordinates, got %d", noise.ErrInvalidParameter, len(coords))
	}

	entry, err := m.entry(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &SampleResult{
		WorldID:    id,
		Dimensions: len(coords),
		X:          coords[0],
	}
	switch len(coords) {
	case 1:
		result.Value = entry.cfg.Sample1(coords[0])
	case 2:
		result.Y = &coords[1]
		result.Value = entry.cfg.Sample2(coords[0], coords[1])
	case 3:
		result.Y = &coords[1]
		result.Z = &coords[2]
		result.Value = entry.cfg.Sample3(coords[0], coords[1], coords[2])
	}
	return result, nil
}

// GenerateChunk samples a ChunkSize x ChunkSize height grid. Rows are
// filled concurrently; samples at distinct coordinates are independent
// reads of the immutable config, so no ordering or locking is needed.
func (m *Manager) GenerateChunk(ctx context.Context, id, chunkX, chunkZ int64) (*Chunk, error) {
	entry, err := m.entry(ctx, id)
	if err != nil {
		return nil, err
	}

	chunk := &Chunk{
		WorldID: id,
		ChunkX:  chunkX,
		ChunkZ:  chunkZ,
		Size:    ChunkSize,
		Heights: make([][]float64, ChunkSize),
		Terrain: make([][]int, ChunkSize),
	}

	baseX := chunkX * ChunkSize
	baseZ := chunkZ * ChunkSize

	parallel.For(ChunkSize, func(zi, _ int) {
		heights := make([]float64, ChunkSize)
		terrain := make([]int, ChunkSize)
		wz := float64(baseZ + int64(zi))

		for xi := 0; xi < ChunkSize; xi++ {
			wx := float64(baseX + int64(xi))
			h := entry.cfg.Sample2(wx, wz)
			heights[xi] = h
			terrain[xi] = classify(h, entry.cfg.Params().Normalize, entry.moisture, wx, wz)
		}

		chunk.Heights[zi] = heights
		chunk.Terrain[zi] = terrain
	})

	log.Debug("Chunk generated", "world_id", id, "chunk_x", chunkX, "chunk_z", chunkZ, "size", ChunkSize)
	return chunk, nil
}

// classify buckets a height sample into a terrain type, splitting the
// mid band by a low-frequency moisture field.
func classify(h float64, normalized bool, moisture *perlin.Perlin, wx, wz float64) int {
	// Classification thresholds expect the [0, 1] view of the signal.
	if !normalized {
		h = (h + 1) * 0.5
	}

	switch {
	case h < 0.30:
		return Water
	case h < 0.38:
		return Sand
	case h < 0.72:
		if moisture.Noise2D(wx*moistureFrequency, wz*moistureFrequency) > moistureThreshold {
			return Forest
		}
		return Grass
	default:
		return Rock
	}
}

const (
	moistureFrequency = 0.004
	moistureThreshold = 0.1
)

// entry returns the cached sampling state for a world, building it on
// first use. Construction cost (permutation tables) is amortized across
// every later sample call.
func (m *Manager) entry(ctx context.Context, id int64) (*worldEntry, error) {
	m.mu.RLock()
	entry, ok := m.cache[id]
	m.mu.RUnlock()
	if ok {
		return entry, nil
	}

	w, err := m.GetWorld(ctx, id)
	if err != nil {
		return nil, err
	}

	variant, err := noise.ParseVariant(w.Variant)
	if err != nil {
		return nil, fmt.Errorf("world %d holds invalid variant %q: %w", id, w.Variant, err)
	}

	cfg, err := noise.New(noise.Params{
		Seed:       w.Seed,
		Octaves:    w.Octaves,
		Lacunarity: w.Lacunarity,
		Gain:       w.Gain,
		Frequency:  w.Frequency,
		Normalize:  w.Normalize,
		Variant:    variant,
	})
	if err != nil {
		return nil, fmt.Errorf("world %d holds invalid parameters: %w", id, err)
	}

	entry = &worldEntry{
		cfg: cfg,
		// Moisture is a sibling field of the height signal; offsetting the
		// seed keeps the two decorrelated but reproducible.
		moisture: perlin.NewPerlin(2, 2, 3, w.Seed+1),
	}

	m.mu.Lock()
	m.cache[id] = entry
	m.mu.Unlock()

	log.Debug("World config built", "world_id", id, "seed", w.Seed, "octaves", w.Octaves, "variant", w.Variant)
	return entry, nil
}

func fromRow(row db.World) World {
	return World{
		ID:         row.ID,
		Name:       row.Name,
		Seed:       row.Seed,
		Octaves:    int(row.Octaves),
		Lacunarity: row.Lacunarity,
		Gain:       row.Gain,
		Frequency:  row.Frequency,
		Normalize:  row.Normalize,
		Variant:    row.Variant,
		CreatedAt:  row.CreatedAt,
	}
}
