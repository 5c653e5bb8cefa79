package image

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultInspectConcurrency bounds how many files InspectAll opens at once.
const DefaultInspectConcurrency = 4

// Info describes a decoded image without its pixel data.
type Info struct {
	Path   string
	Format string
	Width  int
	Height int
	// Err is set when the file could not be inspected.
	Err error
}

// Name returns the base name of the inspected file.
func (i Info) Name() string {
	return filepath.Base(i.Path)
}

// Inspect decodes only the image header of path.
func Inspect(path string) Info {
	info := Info{Path: path}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		info.Err = fmt.Errorf("failed to open image: %w", err)
		return info
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		info.Err = fmt.Errorf("failed to decode image config: %w", err)
		return info
	}

	info.Format = strings.ToUpper(format)
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info
}

// InspectAll inspects every path concurrently and returns results in input
// order. Per-file failures are recorded in Info.Err; only context
// cancellation aborts the batch.
func InspectAll(ctx context.Context, paths []string, concurrency int) ([]Info, error) {
	if concurrency <= 0 {
		concurrency = DefaultInspectConcurrency
	}

	results := make([]Info, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Inspect(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
