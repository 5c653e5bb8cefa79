package image

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httputil "github.com/jmylchreest/sitekit/internal/util/http"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "red.png", solid(4, 3, color.RGBA{R: 255, A: 255}))

	img, err := NewFileLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.png")},
		{"directory", dir},
		{"undecodable", garbage},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(context.Background(), tt.path); err == nil {
				t.Errorf("Load(%q) expected error", tt.path)
			}
		})
	}
}

func TestSmartLoaderURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(2, 2, color.RGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	img, err := NewSmartLoader(httputil.FetchOptions{}).Load(context.Background(), server.URL+"/logo.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestSample(t *testing.T) {
	img := solid(600, 300, color.RGBA{G: 200, A: 255})

	sampled, err := Sample(img, SampleWidth, SampleHeight)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if b := sampled.Bounds(); b.Dx() != 150 || b.Dy() != 150 {
		t.Fatalf("bounds = %v, want 150x150", b)
	}
	if got := sampled.NRGBAAt(75, 75); got.G != 200 || got.R != 0 || got.A != 255 {
		t.Errorf("centre pixel = %v", got)
	}
}

func TestSampleRejectsBadInput(t *testing.T) {
	if _, err := Sample(nil, 10, 10); err == nil {
		t.Error("expected error for nil image")
	}
	if _, err := Sample(solid(1, 1, color.White), 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := Sample(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0d"), FormatPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, FormatJPEG},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBP"), FormatWEBP},
		{"riff but not webp", []byte("RIFF\x24\x00\x00\x00WAVE"), FormatUnknown},
		{"short riff", []byte("RIFF\x24\x00\x00\x00"), FormatUnknown},
		{"gif", []byte("GIF89a\x01\x00"), FormatGIF},
		{"bmp", []byte("BM\x36\x00"), FormatBMP},
		{"tiff little endian", []byte("II*\x00\x08\x00"), FormatTIFF},
		{"empty", nil, FormatUnknown},
		{"text", []byte("<html>"), FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.header); got != tt.want {
				t.Errorf("Sniff() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "icon.png", solid(1, 1, color.White))

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if h.Format != FormatPNG {
		t.Errorf("Format = %s, want PNG", h.Format)
	}
	if h.Hex() != "89504e470d0a1a0a" {
		t.Errorf("Hex() = %s", h.Hex())
	}

	short := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(short, []byte{0xff, 0xd8}, 0o600); err != nil {
		t.Fatal(err)
	}
	h, err = ReadHeader(short)
	if err != nil {
		t.Fatalf("ReadHeader(short) error = %v", err)
	}
	if h.Format != FormatJPEG || h.Hex() != "ffd8" {
		t.Errorf("short header = %s %s", h.Format, h.Hex())
	}

	if _, err := ReadHeader(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInspectAll(t *testing.T) {
	dir := t.TempDir()
	small := writePNG(t, dir, "icon-192.png", solid(192, 192, color.White))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(32, 16, color.Black), nil); err != nil {
		t.Fatal(err)
	}
	photo := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(photo, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "icon-512.png")

	infos, err := InspectAll(context.Background(), []string{small, missing, photo}, 2)
	if err != nil {
		t.Fatalf("InspectAll() error = %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("len = %d, want 3", len(infos))
	}

	if infos[0].Err != nil || infos[0].Format != "PNG" || infos[0].Width != 192 || infos[0].Name() != "icon-192.png" {
		t.Errorf("infos[0] = %+v", infos[0])
	}
	if infos[1].Err == nil {
		t.Error("infos[1] expected error for missing file")
	}
	if infos[2].Err != nil || infos[2].Format != "JPEG" || infos[2].Width != 32 || infos[2].Height != 16 {
		t.Errorf("infos[2] = %+v", infos[2])
	}
}

func TestInspectAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := InspectAll(ctx, []string{"a.png"}, 1); err == nil {
		t.Error("expected error for cancelled context")
	}
}
