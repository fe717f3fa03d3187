// Package noise implements a deterministic fractal noise engine: a seeded
// gradient lattice kernel in one, two and three dimensions, layered by
// octave-accumulation combinators (fBm, billow, ridged).
//
// A Config is built once per seed/parameter set and is immutable afterwards;
// it is safe to share across any number of concurrently sampling goroutines.
// Sampling never fails and performs no I/O. Coordinates are expected to be
// finite; behavior for NaN or infinite inputs is undefined.
package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every validation failure from New.
var ErrInvalidParameter = errors.New("invalid noise parameter")

// Variant selects the octave-accumulation strategy of a Config.
type Variant int

const (
	// FBm is plain fractal Brownian motion: octaves are accumulated as-is.
	FBm Variant = iota
	// Billow folds each octave through |v|*2-1 before accumulation,
	// producing cloud-like, ridge-symmetric structure.
	Billow
	// Ridged folds each octave through 1-|v| and weights octaves by the
	// previous octave's signal, producing sharp ridge lines.
	Ridged
)

func (v Variant) String() string {
	switch v {
	case FBm:
		return "fbm"
	case Billow:
		return "billow"
	case Ridged:
		return "ridged"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant converts the wire/config spelling of a variant into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "fbm", "":
		return FBm, nil
	case "billow":
		return Billow, nil
	case "ridged":
		return Ridged, nil
	default:
		return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidParameter, s)
	}
}

// Params bundles everything needed to build a Config.
type Params struct {
	Seed       int64   `json:"seed"`
	Octaves    int     `json:"octaves"`
	Lacunarity float64 `json:"lacunarity"`
	Gain       float64 `json:"gain"`
	Frequency  float64 `json:"frequency"`
	Normalize  bool    `json:"normalize"`
	TableSize  int     `json:"table_size,omitempty"` // 0 means DefaultTableSize
	Variant    Variant `json:"-"`
}

// Config is an immutable, fully validated noise configuration. All
// pseudo-randomness is captured in its permutation tables at construction
// time; every Sample call afterwards is a pure read.
type Config struct {
	params   Params
	bounding float64
	tables   [][]int
}

// New validates p, generates the per-octave permutation tables and derives
// the fractal bounding constant. It is the only place errors can occur;
// sampling on a returned Config is infallible.
func New(p Params) (*Config, error) {
	return NewWithSource(p, lcgSource{})
}

// NewWithSource is New with a caller-supplied permutation source, so
// alternative shuffle/hash strategies can be substituted without touching
// the combinators.
func NewWithSource(p Params, src TableSource) (*Config, error) {
	if p.TableSize == 0 {
		p.TableSize = DefaultTableSize
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	return &Config{
		params:   p,
		bounding: fractalBounding(p.Gain, p.Octaves),
		tables:   buildTables(src, p.Seed, p.Octaves, p.TableSize),
	}, nil
}

func validate(p Params) error {
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be >= 1, got %d", ErrInvalidParameter, p.Octaves)
	}
	if !(p.Lacunarity > 0) {
		return fmt.Errorf("%w: lacunarity must be > 0, got %v", ErrInvalidParameter, p.Lacunarity)
	}
	if !(p.Gain > 0) {
		return fmt.Errorf("%w: gain must be > 0, got %v", ErrInvalidParameter, p.Gain)
	}
	if !(p.Frequency > 0) {
		return fmt.Errorf("%w: frequency must be > 0, got %v", ErrInvalidParameter, p.Frequency)
	}
	if p.TableSize <= 0 {
		return fmt.Errorf("%w: table size must be > 0, got %d", ErrInvalidParameter, p.TableSize)
	}
	if p.Variant < FBm || p.Variant > Ridged {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidParameter, int(p.Variant))
	}
	return nil
}

// fractalBounding rescales a raw octave sum so the output magnitude is
// independent of the octave count: (1-gain)/(1-gain^octaves), the closed
// form of 1/(1+gain+...+gain^(octaves-1)).
func fractalBounding(gain float64, octaves int) float64 {
	if octaves == 1 {
		return 1
	}
	denom := 1 - math.Pow(gain, float64(octaves))
	if denom == 0 {
		// gain == 1 degenerates the geometric series; fall back to the
		// direct sum 1/octaves.
		return 1 / float64(octaves)
	}
	return (1 - gain) / denom
}

// Seed returns the seed the configuration was built from.
func (c *Config) Seed() int64 { return c.params.Seed }

// Octaves returns the number of fractal layers.
func (c *Config) Octaves() int { return c.params.Octaves }

// Variant returns the octave-accumulation strategy.
func (c *Config) Variant() Variant { return c.params.Variant }

// TableSize returns the permutation table size.
func (c *Config) TableSize() int { return c.params.TableSize }

// Params returns a copy of the parameters the configuration was built from.
func (c *Config) Params() Params { return c.params }
