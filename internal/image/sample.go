package image

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Default sample dimensions. Every extraction works on at most
// SampleWidth*SampleHeight pixels regardless of source size.
const (
	SampleWidth  = 150
	SampleHeight = 150
)

// Sample resizes img to exactly width x height. The aspect ratio is not
// preserved. Paletted images are scaled nearest-neighbour so no colours
// outside the palette appear; everything else uses Catmull-Rom. The result
// is non-premultiplied so reading it back drops alpha without darkening.
func Sample(img image.Image, width, height int) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %dx%d", width, height)
	}
	src := img.Bounds()
	if src.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler := draw.Scaler(draw.CatmullRom)
	if _, ok := img.(*image.Paletted); ok {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst, nil
}
