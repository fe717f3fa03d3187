package noise

import "math"

// s2 is 1/sqrt(2); gradients are kept unit length so the sqrt(d)/2 output
// extrema hold and latticeScale below is exact.
const s2 = 0.7071067811865476

// Gradient tables in the style of Perlin's improved noise, rescaled to unit
// length. The 3D set is the 12 cube edges plus 4 repeats to fill a 16-entry
// mask; the 2D set is the 4 axes plus the 4 diagonals.
var (
	grad2 = [8][2]float64{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{s2, s2}, {-s2, s2}, {s2, -s2}, {-s2, -s2},
	}
	grad3 = [16][3]float64{
		{s2, s2, 0}, {-s2, s2, 0}, {s2, -s2, 0}, {-s2, -s2, 0},
		{s2, 0, s2}, {-s2, 0, s2}, {s2, 0, -s2}, {-s2, 0, -s2},
		{0, s2, s2}, {0, -s2, s2}, {0, s2, -s2}, {0, -s2, -s2},
		{s2, s2, 0}, {-s2, s2, 0}, {0, -s2, s2}, {0, -s2, -s2},
	}
)

// Scale factors bringing the raw lattice interpolation into [-1, 1] per
// dimension count: with unit gradients the theoretical extrema are sqrt(d)/2.
var latticeScale = [4]float64{0, 2, math.Sqrt2, 1.1547005383792515}

// fade is the quintic blending curve 6t^5 - 15t^4 + 10t^3. Its first and
// second derivatives vanish at the lattice boundaries, which is what keeps
// the interpolated signal continuous across cells.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// gradDot hashes a lattice corner into a gradient and projects the
// corner-to-sample offset onto it.
func gradDot(h int, d [3]float64, dims int) float64 {
	switch dims {
	case 1:
		if h&1 == 0 {
			return d[0]
		}
		return -d[0]
	case 2:
		g := grad2[h&7]
		return g[0]*d[0] + g[1]*d[1]
	default:
		g := grad3[h&15]
		return g[0]*d[0] + g[1]*d[1] + g[2]*d[2]
	}
}

// latticeSample evaluates one octave of gradient noise at p over the first
// dims axes, hashing lattice corners through the given doubled permutation
// table. One routine serves all three dimension counts: the 2^dims cell
// corners are enumerated bitwise and reduced by faded interpolation one axis
// at a time. Output is deterministic, continuous and bounded to [-1, 1]
// regardless of coordinate magnitude (lattice indices are wrapped, never
// used raw).
func latticeSample(table []int, size int, p [3]float64, dims int) float64 {
	var lat [3]int
	var frac, blend [3]float64
	for d := 0; d < dims; d++ {
		f := math.Floor(p[d])
		lat[d] = int(f)
		frac[d] = p[d] - f
		blend[d] = fade(frac[d])
	}

	// One gradient projection per cell corner. Corner bit d is the offset
	// along axis d.
	var vals [8]float64
	corners := 1 << dims
	for c := 0; c < corners; c++ {
		var off [3]float64
		h := table[wrapIndex(lat[0]+c&1, size)]
		off[0] = frac[0] - float64(c&1)
		for d := 1; d < dims; d++ {
			bit := (c >> d) & 1
			h = table[h+wrapIndex(lat[d]+bit, size)]
			off[d] = frac[d] - float64(bit)
		}
		vals[c] = gradDot(h, off, dims)
	}

	// Collapse the hypercube axis by axis; pairs (2i, 2i+1) always differ
	// in the axis currently being interpolated.
	n := corners
	for d := 0; d < dims; d++ {
		n /= 2
		for i := 0; i < n; i++ {
			vals[i] = lerp(vals[2*i], vals[2*i+1], blend[d])
		}
	}

	return vals[0] * latticeScale[dims]
}
