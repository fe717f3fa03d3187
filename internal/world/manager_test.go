package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FractalMesh/api/internal/config"
	"github.com/FractalMesh/api/internal/noise"
	"github.com/FractalMesh/api/internal/testutil"
)

func testDefaults() config.NoiseConfig {
	return config.NoiseConfig{
		Octaves:    4,
		Lacunarity: 2.0,
		Gain:       0.5,
		Frequency:  0.01,
		Variant:    "fbm",
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(testutil.OpenTestDB(t), testDefaults())
}

func TestCreateWorld(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name    string
		req     CreateWorldRequest
		wantErr bool
		check   func(t *testing.T, w *World)
	}{
		{
			name: "explicit parameters",
			req: CreateWorldRequest{
				Name: "highlands", Seed: 42, Octaves: 6,
				Lacunarity: 2.5, Gain: 0.45, Frequency: 0.02,
				Normalize: true, Variant: "billow",
			},
			check: func(t *testing.T, w *World) {
				assert.Equal(t, "highlands", w.Name)
				assert.Equal(t, int64(42), w.Seed)
				assert.Equal(t, 6, w.Octaves)
				assert.Equal(t, "billow", w.Variant)
				assert.True(t, w.Normalize)
			},
		},
		{
			name: "defaults applied to zero knobs",
			req:  CreateWorldRequest{Name: "plains", Seed: 7},
			check: func(t *testing.T, w *World) {
				assert.Equal(t, 4, w.Octaves)
				assert.Equal(t, 2.0, w.Lacunarity)
				assert.Equal(t, 0.5, w.Gain)
				assert.Equal(t, 0.01, w.Frequency)
				assert.Equal(t, "fbm", w.Variant)
			},
		},
		{
			name:    "empty name rejected",
			req:     CreateWorldRequest{Seed: 1},
			wantErr: true,
		},
		{
			name: "negative octaves rejected",
			req: CreateWorldRequest{
				Name: "bad", Seed: 1, Octaves: -2,
			},
			wantErr: true,
		},
		{
			name: "negative gain rejected",
			req: CreateWorldRequest{
				Name: "bad", Seed: 1, Gain: -0.5,
			},
			wantErr: true,
		},
		{
			name: "unknown variant rejected",
			req: CreateWorldRequest{
				Name: "bad", Seed: 1, Variant: "worley",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(t)

			created, err := manager.CreateWorld(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, noise.ErrInvalidParameter)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Positive(t, created.ID)
			if tt.check != nil {
				tt.check(t, created)
			}
		})
	}
}

func TestWorldLifecycle(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	manager := newTestManager(t)
	ctx := context.Background()

	created, err := manager.CreateWorld(ctx, CreateWorldRequest{Name: "alpha", Seed: 1})
	require.NoError(t, err)
	_, err = manager.CreateWorld(ctx, CreateWorldRequest{Name: "beta", Seed: 2})
	require.NoError(t, err)

	worlds, err := manager.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Len(t, worlds, 2)

	got, err := manager.GetWorld(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	require.NoError(t, manager.DeleteWorld(ctx, created.ID))

	_, err = manager.GetWorld(ctx, created.ID)
	assert.ErrorIs(t, err, ErrWorldNotFound)
	assert.ErrorIs(t, manager.DeleteWorld(ctx, created.ID), ErrWorldNotFound)

	_, err = manager.GetWorld(ctx, 99999)
	assert.ErrorIs(t, err, ErrWorldNotFound)
}

func TestSampleAt(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	manager := newTestManager(t)
	ctx := context.Background()

	created, err := manager.CreateWorld(ctx, CreateWorldRequest{
		Name: "gamma", Seed: 42, Normalize: true,
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		coords []float64
		dims   int
	}{
		{name: "1D", coords: []float64{10.5}, dims: 1},
		{name: "2D", coords: []float64{10.5, -3.2}, dims: 2},
		{name: "3D", coords: []float64{10.5, -3.2, 88.1}, dims: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := manager.SampleAt(ctx, created.ID, tt.coords)
			require.NoError(t, err)
			assert.Equal(t, tt.dims, result.Dimensions)
			assert.GreaterOrEqual(t, result.Value, 0.0)
			assert.LessOrEqual(t, result.Value, 1.0)

			// Cached config: repeated samples are bit-identical.
			again, err := manager.SampleAt(ctx, created.ID, tt.coords)
			require.NoError(t, err)
			assert.Equal(t, result.Value, again.Value)
		})
	}

	_, err = manager.SampleAt(ctx, created.ID, nil)
	assert.ErrorIs(t, err, noise.ErrInvalidParameter)
	_, err = manager.SampleAt(ctx, created.ID, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, noise.ErrInvalidParameter)
	_, err = manager.SampleAt(ctx, 99999, []float64{1})
	assert.ErrorIs(t, err, ErrWorldNotFound)
}

func TestSampleMatchesEngine(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	manager := newTestManager(t)
	ctx := context.Background()

	created, err := manager.CreateWorld(ctx, CreateWorldRequest{
		Name: "delta", Seed: 42, Octaves: 4, Lacunarity: 2.0,
		Gain: 0.5, Frequency: 0.01, Variant: "billow",
	})
	require.NoError(t, err)

	cfg, err := noise.New(noise.Params{
		Seed: 42, Octaves: 4, Lacunarity: 2.0, Gain: 0.5,
		Frequency: 0.01, Variant: noise.Billow,
	})
	require.NoError(t, err)

	result, err := manager.SampleAt(ctx, created.ID, []float64{12.34, 56.78})
	require.NoError(t, err)
	assert.Equal(t, cfg.Sample2(12.34, 56.78), result.Value)
}

func TestGenerateChunk(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	manager := newTestManager(t)
	ctx := context.Background()

	created, err := manager.CreateWorld(ctx, CreateWorldRequest{
		Name: "epsilon", Seed: 1234, Normalize: true,
	})
	require.NoError(t, err)

	chunk, err := manager.GenerateChunk(ctx, created.ID, -2, 3)
	require.NoError(t, err)

	assert.Equal(t, created.ID, chunk.WorldID)
	assert.Equal(t, int64(-2), chunk.ChunkX)
	assert.Equal(t, int64(3), chunk.ChunkZ)
	assert.Equal(t, ChunkSize, chunk.Size)
	require.Len(t, chunk.Heights, ChunkSize)
	require.Len(t, chunk.Terrain, ChunkSize)

	for z := 0; z < ChunkSize; z++ {
		require.Len(t, chunk.Heights[z], ChunkSize)
		require.Len(t, chunk.Terrain[z], ChunkSize)
		for x := 0; x < ChunkSize; x++ {
			assert.GreaterOrEqual(t, chunk.Heights[z][x], 0.0)
			assert.LessOrEqual(t, chunk.Heights[z][x], 1.0)
			assert.GreaterOrEqual(t, chunk.Terrain[z][x], Water)
			assert.LessOrEqual(t, chunk.Terrain[z][x], Rock)
		}
	}

	// Chunk generation is deterministic regardless of row scheduling.
	again, err := manager.GenerateChunk(ctx, created.ID, -2, 3)
	require.NoError(t, err)
	assert.Equal(t, chunk.Heights, again.Heights)
	assert.Equal(t, chunk.Terrain, again.Terrain)

	// Adjacent chunks share their seam coordinates by construction, so the
	// grids must differ while the underlying field stays continuous.
	neighbor, err := manager.GenerateChunk(ctx, created.ID, -1, 3)
	require.NoError(t, err)
	assert.NotEqual(t, chunk.Heights, neighbor.Heights)

	_, err = manager.GenerateChunk(ctx, 99999, 0, 0)
	assert.ErrorIs(t, err, ErrWorldNotFound)
}
