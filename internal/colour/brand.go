package colour

import (
	"fmt"
	"image"
)

// HueBand is an open hue interval (Min, Max) in normalised hue units.
type HueBand struct {
	Label    string
	Min, Max float64
}

// Contains reports whether h lies strictly inside the band.
func (b HueBand) Contains(h float64) bool {
	return h > b.Min && h < b.Max
}

// DefaultBrandBands are the bands used for brand colour detection, in
// output order.
var DefaultBrandBands = []HueBand{
	{Label: "orange", Min: 0.05, Max: 0.15},
	{Label: "green", Min: 0.2, Max: 0.4},
	{Label: "blue", Min: 0.5, Max: 0.7},
}

// BrandExtractor returns the most common quantised colour in each hue band,
// considering only pixels that are both saturated and bright.
type BrandExtractor struct {
	bands         []HueBand
	step          int
	minSaturation float64
	minValue      float64
}

// NewBrandExtractor creates a BrandExtractor over DefaultBrandBands.
func NewBrandExtractor(step int) *BrandExtractor {
	return &BrandExtractor{
		bands:         DefaultBrandBands,
		step:          step,
		minSaturation: 0.3,
		minValue:      0.3,
	}
}

// Extract implements Extractor. Bands with no matching pixels are omitted.
func (e *BrandExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	hists := make([]*Histogram, len(e.bands))
	for i := range hists {
		hists[i] = NewHistogram()
	}

	sampled := 0
	for _, p := range pixels(img) {
		sampled++
		hsv := ToHSV(p)
		if hsv.S <= e.minSaturation || hsv.V <= e.minValue {
			continue
		}
		for i, band := range e.bands {
			if band.Contains(hsv.H) {
				hists[i].Add(Quantise(p, e.step))
				break
			}
		}
	}
	if sampled == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	palette := &Palette{Sampled: sampled}
	for i, h := range hists {
		top := h.MostCommon(1)
		if len(top) == 0 {
			continue
		}
		top[0].Label = e.bands[i].Label
		palette.Entries = append(palette.Entries, top[0])
	}
	return palette, nil
}
