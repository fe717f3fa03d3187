package noise

// DefaultTableSize is the permutation table size used when Params.TableSize
// is left zero. 256 matches the classic Perlin reference tables.
const DefaultTableSize = 256

// TableSource produces a seeded permutation of [0, size). It is the only
// source of pseudo-randomness in the engine; everything downstream is plain
// deterministic arithmetic. Implementations must return byte-identical
// permutations for identical (seed, size) pairs.
type TableSource interface {
	Permutation(seed int64, size int) []int
}

// lcgSource is the default TableSource: an in-place Fisher-Yates shuffle
// driven by a 64-bit LCG (Knuth MMIX constants).
type lcgSource struct{}

func (lcgSource) Permutation(seed int64, size int) []int {
	p := make([]int, size)
	for i := range p {
		p[i] = i
	}

	s := uint64(seed)
	for i := size - 1; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// buildTables generates one permutation per octave. Octaves are decorrelated
// by offsetting the seed per octave index, so the same seed always yields the
// same family of tables. Each table is stored doubled so corner hashing can
// index perm[perm[a]+b] without wrapping the inner lookup.
func buildTables(src TableSource, seed int64, octaves, size int) [][]int {
	tables := make([][]int, octaves)
	for i := range tables {
		p := src.Permutation(seed+int64(i), size)
		doubled := make([]int, size*2)
		copy(doubled, p)
		copy(doubled[size:], p)
		tables[i] = doubled
	}
	return tables
}

// wrapIndex maps an arbitrary lattice coordinate into [0, size). Plain %
// would return negative values for negative coordinates.
func wrapIndex(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
