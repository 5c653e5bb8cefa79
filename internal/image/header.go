package image

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is how many leading bytes Sniff inspects.
const HeaderSize = 12

// DisplayHeaderSize is how many leading bytes are shown in hex.
const DisplayHeaderSize = 8

// Format is a container format detected from magic bytes.
type Format string

// Formats recognised by Sniff.
const (
	FormatPNG     Format = "PNG"
	FormatJPEG    Format = "JPEG"
	FormatWEBP    Format = "WEBP"
	FormatGIF     Format = "GIF"
	FormatBMP     Format = "BMP"
	FormatTIFF    Format = "TIFF"
	FormatUnknown Format = "Unknown"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Sniff identifies the format from the first bytes of a file.
func Sniff(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(header, []byte{0xff, 0xd8}):
		return FormatJPEG
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")):
		return FormatWEBP
	case bytes.HasPrefix(header, []byte("GIF87a")), bytes.HasPrefix(header, []byte("GIF89a")):
		return FormatGIF
	case bytes.HasPrefix(header, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(header, []byte("II*\x00")), bytes.HasPrefix(header, []byte("MM\x00*")):
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// Header is the result of reading a file's leading bytes.
type Header struct {
	Path   string
	Bytes  []byte
	Format Format
}

// Hex returns the first DisplayHeaderSize bytes as lowercase hex.
func (h Header) Hex() string {
	n := min(len(h.Bytes), DisplayHeaderSize)
	return hex.EncodeToString(h.Bytes[:n])
}

// ReadHeader reads up to HeaderSize bytes from path and sniffs the format.
// Files shorter than HeaderSize are not an error.
func ReadHeader(path string) (Header, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified path, intended to be read
	if err != nil {
		return Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	buf = buf[:n]

	return Header{
		Path:   path,
		Bytes:  buf,
		Format: Sniff(buf),
	}, nil
}
