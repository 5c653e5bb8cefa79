package colour

import (
	"fmt"
	"image"
	"slices"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract builds a palette from every pixel of img. Callers are expected
	// to downsample large images first.
	Extract(img image.Image) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmDominant counts quantised colours, preferring saturated pixels.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmBrand picks the most common colour in fixed hue bands.
	AlgorithmBrand Algorithm = "brand"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmDominant, AlgorithmBrand}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm Algorithm

	// ColourCount is the maximum number of colours returned by the dominant algorithm.
	ColourCount int

	// Step is the quantisation step applied to each channel.
	Step int

	// SaturationThreshold separates colourful pixels from greys (dominant only).
	SaturationThreshold float64

	// MinColourful is how many colourful pixels must exceed before greys are
	// dropped (dominant only).
	MinColourful int
}

// DefaultExtractorConfig returns the default configuration for alg.
func DefaultExtractorConfig(alg Algorithm) ExtractorConfig {
	if alg == AlgorithmBrand {
		return ExtractorConfig{
			Algorithm: AlgorithmBrand,
			Step:      10,
		}
	}
	return ExtractorConfig{
		Algorithm:           AlgorithmDominant,
		ColourCount:         10,
		Step:                16,
		SaturationThreshold: 0.1,
		MinColourful:        100,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.Step < 1 || c.Step > 128 {
		return fmt.Errorf("quantisation step must be between 1 and 128, got %d", c.Step)
	}
	if c.Algorithm == AlgorithmBrand {
		return nil
	}
	if c.ColourCount < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.ColourCount)
	}
	if c.ColourCount > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.ColourCount)
	}
	if c.SaturationThreshold < 0 || c.SaturationThreshold >= 1 {
		return fmt.Errorf("saturation threshold must be in [0, 1), got %g", c.SaturationThreshold)
	}
	if c.MinColourful < 0 {
		return fmt.Errorf("minimum colourful pixel count cannot be negative, got %d", c.MinColourful)
	}
	return nil
}

// NewExtractor creates a new Extractor for a validated configuration.
func NewExtractor(cfg ExtractorConfig) (Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmDominant:
		return NewDominantExtractor(cfg), nil
	case AlgorithmBrand:
		return NewBrandExtractor(cfg.Step), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", cfg.Algorithm)
	}
}

// pixels returns every pixel of img as RGB in row-major order.
func pixels(img image.Image) []RGB {
	bounds := img.Bounds()
	out := make([]RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out = append(out, ToRGB(img.At(x, y)))
		}
	}
	return out
}
