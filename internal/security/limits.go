// Package security provides bounds and size guards for untrusted input.
package security

import (
	"errors"
	"io"
)

// ErrSizeLimit is returned by LimitedReader once the limit is exceeded.
var ErrSizeLimit = errors.New("size limit exceeded")

// ClampUint8 clamps an integer to 0-255 and converts it to uint8.
func ClampUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and fails once more than the allowed
// number of bytes would be read. Unlike io.LimitReader it reports the
// overflow instead of silently truncating.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Exactly at the limit is fine as long as nothing follows.
		var next [1]byte
		n, err := l.R.Read(next[:])
		if n == 0 {
			return 0, err
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}
