// Package colour provides colour types, quantisation and dominant colour
// extraction.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB, discarding alpha without
// premultiplying. A half-transparent red stays red.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Entry is one palette colour with the number of sampled pixels that
// quantised to it.
type Entry struct {
	Colour RGB
	Count  int
	// Label names the hue band for band-based extraction; empty otherwise.
	Label string
}

// Palette is an ordered set of extracted colours, most significant first.
type Palette struct {
	Entries []Entry
	// Sampled is the number of pixels the counts were taken from.
	Sampled int
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexColours[i] = e.Colour.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Sampled int          `json:"sampled"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Entries))
	for i, e := range p.Entries {
		var weight float64
		if p.Sampled > 0 {
			weight = float64(e.Count) / float64(p.Sampled)
		}
		colours[i] = ColourJSON{
			Hex:    e.Colour.Hex(),
			RGB:    e.Colour,
			Count:  e.Count,
			Weight: weight,
			Label:  e.Label,
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:   len(p.Entries),
		Sampled: p.Sampled,
		Colours: colours,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", len(p.Entries))
	for i, e := range p.Entries {
		fmt.Fprintf(&b, "  %2d: %s (%s) x%d\n", i+1, e.Colour.Hex(), e.Colour.String(), e.Count)
	}
	return b.String()
}
