package colour

import (
	"encoding/json"
	"image/color"
	"strings"
	"testing"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "opaque red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "non-premultiplied keeps channels",
			color: color.NRGBA{R: 200, G: 100, B: 50, A: 128},
			want:  RGB{R: 200, G: 100, B: 50},
		},
		{
			name:  "gray",
			color: color.Gray{Y: 128},
			want:  RGB{R: 128, G: 128, B: 128},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{R: 0x1a, G: 0x2b, B: 0x3c}).Hex(); got != "#1a2b3c" {
		t.Errorf("Hex() = %s, want #1a2b3c", got)
	}
	if got := (RGB{R: 255, G: 255, B: 255}).Hex(); got != "#ffffff" {
		t.Errorf("Hex() = %s, want #ffffff", got)
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := &Palette{
		Entries: []Entry{
			{Colour: RGB{R: 240}, Count: 3, Label: "red"},
			{Colour: RGB{B: 240}, Count: 1},
		},
		Sampled: 4,
	}

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Count != 2 || decoded.Sampled != 4 {
		t.Errorf("count/sampled = %d/%d", decoded.Count, decoded.Sampled)
	}
	if decoded.Colours[0].Hex != "#f00000" || decoded.Colours[0].Weight != 0.75 {
		t.Errorf("first colour = %+v", decoded.Colours[0])
	}
	if strings.Contains(string(data), `"label": ""`) {
		t.Error("empty label should be omitted")
	}
}

func TestPaletteString(t *testing.T) {
	if got := (&Palette{}).String(); got != "Empty palette" {
		t.Errorf("String() = %q", got)
	}
	p := &Palette{Entries: []Entry{{Colour: RGB{R: 16, G: 32, B: 48}, Count: 2}}}
	if !strings.Contains(p.String(), "#102030") {
		t.Errorf("String() = %q", p.String())
	}
}

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 1, G: 2, B: 3}, 2)
	want := "\033[48;2;1;2;3m  \033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}
}
