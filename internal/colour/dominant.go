package colour

import (
	"fmt"
	"image"
)

// DominantExtractor finds the most frequent quantised colours. Saturated
// pixels are preferred: when more than minColourful of them exist, greys
// are ignored entirely.
type DominantExtractor struct {
	count         int
	step          int
	minSaturation float64
	minColourful  int
}

// NewDominantExtractor creates a DominantExtractor from cfg. The
// configuration is assumed valid; see NewExtractor.
func NewDominantExtractor(cfg ExtractorConfig) *DominantExtractor {
	return &DominantExtractor{
		count:         cfg.ColourCount,
		step:          cfg.Step,
		minSaturation: cfg.SaturationThreshold,
		minColourful:  cfg.MinColourful,
	}
}

// Extract implements Extractor.
func (e *DominantExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	all := pixels(img)
	if len(all) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	colourful := make([]RGB, 0, len(all))
	for _, p := range all {
		if ToHSV(p).S > e.minSaturation {
			colourful = append(colourful, p)
		}
	}

	target := all
	if len(colourful) > e.minColourful {
		target = colourful
	}

	hist := NewHistogram()
	for _, p := range target {
		hist.Add(Quantise(p, e.step))
	}

	return &Palette{
		Entries: hist.MostCommon(e.count),
		Sampled: hist.Total(),
	}, nil
}
