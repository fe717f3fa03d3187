package noise

import "math"

// Sample1 samples the configured fractal at a 1D coordinate.
func (c *Config) Sample1(x float64) float64 {
	return c.sample([3]float64{x}, 1)
}

// Sample2 samples the configured fractal at a 2D coordinate.
func (c *Config) Sample2(x, y float64) float64 {
	return c.sample([3]float64{x, y}, 2)
}

// Sample3 samples the configured fractal at a 3D coordinate.
func (c *Config) Sample3(x, y, z float64) float64 {
	return c.sample([3]float64{x, y, z}, 3)
}

func (c *Config) sample(p [3]float64, dims int) float64 {
	for d := 0; d < dims; d++ {
		p[d] *= c.params.Frequency
	}

	switch c.params.Variant {
	case Billow:
		return c.accumulate(p, dims, billowFold)
	case Ridged:
		return c.accumulateRidged(p, dims)
	default:
		return c.accumulate(p, dims, nil)
	}
}

// billowFold reflects the signed base signal back into [-1, 1], emphasizing
// ridges and valleys symmetrically.
func billowFold(v float64) float64 {
	return math.Abs(v)*2 - 1
}

// accumulate is the shared octave loop for the fixed-amplitude variants.
// The first octave seeds the sum at amplitude 1.0 with no lacunarity or
// gain applied, so a single-octave config reduces to exactly one
// transformed base sample. Operation order is identical across dimension
// counts: scale the coordinate, decay the amplitude, then accumulate.
func (c *Config) accumulate(p [3]float64, dims int, fold func(float64) float64) float64 {
	v := latticeSample(c.tables[0], c.params.TableSize, p, dims)
	if fold != nil {
		v = fold(v)
	}
	sum := v
	amp := 1.0

	for i := 1; i < c.params.Octaves; i++ {
		for d := 0; d < dims; d++ {
			p[d] *= c.params.Lacunarity
		}
		amp *= c.params.Gain

		v = latticeSample(c.tables[i], c.params.TableSize, p, dims)
		if fold != nil {
			v = fold(v)
		}
		sum += v * amp
	}

	return c.finish(sum)
}

// ridgedWeightScale sharpens the signal-dependent octave weighting: the
// previous octave's ridge value, scaled and clamped to [0, 1], gates how
// much the next octave contributes. Following Musgrave's ridged
// multifractal.
const ridgedWeightScale = 2.0

// accumulateRidged shares the coordinate/amplitude recursion of accumulate
// but folds through 1-|v| and weights each octave by the previous signal,
// so detail concentrates along ridge lines instead of being added uniformly.
func (c *Config) accumulateRidged(p [3]float64, dims int) float64 {
	signal := 1 - math.Abs(latticeSample(c.tables[0], c.params.TableSize, p, dims))
	sum := signal
	amp := 1.0

	for i := 1; i < c.params.Octaves; i++ {
		for d := 0; d < dims; d++ {
			p[d] *= c.params.Lacunarity
		}
		amp *= c.params.Gain

		weight := signal * ridgedWeightScale
		if weight > 1 {
			weight = 1
		} else if weight < 0 {
			weight = 0
		}

		signal = (1 - math.Abs(latticeSample(c.tables[i], c.params.TableSize, p, dims))) * weight
		sum += signal * amp
	}

	return c.finish(sum)
}

func (c *Config) finish(sum float64) float64 {
	if c.params.Normalize {
		return (sum*c.bounding + 1) * 0.5
	}
	return sum * c.bounding
}
