package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sitekit/internal/colour"
	"github.com/jmylchreest/sitekit/internal/image"
	httputil "github.com/jmylchreest/sitekit/internal/util/http"
)

// Output markers bracket the colour list so callers can scrape it from
// surrounding log text.
const (
	markerStart = "COLORS_START"
	markerEnd   = "COLORS_END"
)

var paletteFormats = []string{"markers", "hex", "rgb", "json"}

// extractOptions are the flags shared by colours and brand.
type extractOptions struct {
	format  string
	output  string
	preview bool
	config  colour.ExtractorConfig
}

func (e *extractOptions) registerOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&e.format, "format", "f", "markers", "output format (markers, hex, rgb, json)")
	cmd.Flags().StringVarP(&e.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&e.preview, "preview", false, "show colour swatches when writing to a terminal")
}

func newColoursCmd(g *globalOptions) *cobra.Command {
	e := &extractOptions{config: colour.DefaultExtractorConfig(colour.AlgorithmDominant)}

	cmd := &cobra.Command{
		Use:     "colours <image>",
		Aliases: []string{"colors"},
		Short:   "Extract the dominant colours of an image",
		Long: `Extract the most common colours of an image.

The image is resized to 150x150, each channel is snapped to a grid of
--step, and the most frequent results are printed. When more than
--min-colourful pixels have saturation above --saturation, grey pixels
are ignored so backgrounds do not drown out the artwork.

Examples:
  # Ten dominant colours between COLORS_START / COLORS_END markers
  sitekit colours img/2.png

  # Five colours as JSON with pixel counts
  sitekit colours -c 5 -f json img/logo.webp

  # Remote images work too
  sitekit colours https://example.com/banner.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, e, args[0])
		},
	}

	cmd.Flags().IntVarP(&e.config.ColourCount, "colours", "c", e.config.ColourCount, "number of colours to print (1-256)")
	cmd.Flags().IntVar(&e.config.Step, "step", e.config.Step, "quantisation step per channel (1-128)")
	cmd.Flags().Float64Var(&e.config.SaturationThreshold, "saturation", e.config.SaturationThreshold, "saturation above which a pixel counts as colourful")
	cmd.Flags().IntVar(&e.config.MinColourful, "min-colourful", e.config.MinColourful, "colourful pixels required before greys are ignored")
	e.registerOutputFlags(cmd)

	return cmd
}

func newBrandCmd(g *globalOptions) *cobra.Command {
	e := &extractOptions{config: colour.DefaultExtractorConfig(colour.AlgorithmBrand)}

	cmd := &cobra.Command{
		Use:   "brand <image>",
		Short: "Find the orange, green and blue brand colours of a logo",
		Long: `Find the most common saturated colour in each brand hue band.

Only pixels with saturation and value above 0.3 are considered. Bands are
reported in the order orange, green, blue; bands with no pixels are
left out.

Examples:
  sitekit brand uploaded_logo.png
  sitekit brand --preview --format hex uploaded_logo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, e, args[0])
		},
	}

	cmd.Flags().IntVar(&e.config.Step, "step", e.config.Step, "quantisation step per channel (1-128)")
	e.registerOutputFlags(cmd)

	return cmd
}

// runExtract loads, samples and extracts, then writes the formatted palette.
func runExtract(cmd *cobra.Command, g *globalOptions, e *extractOptions, path string) error {
	logger := g.logger.Named(string(e.config.Algorithm))

	if !slices.Contains(paletteFormats, e.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", e.format, strings.Join(paletteFormats, ", "))
	}

	extractor, err := colour.NewExtractor(e.config)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("loading image", "path", path)
	loader := image.NewSmartLoader(httputil.FetchOptions{Timeout: g.config.HTTP.Timeout})
	img, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	sampled, err := image.Sample(img, image.SampleWidth, image.SampleHeight)
	if err != nil {
		return fmt.Errorf("failed to sample image: %w", err)
	}

	palette, err := extractor.Extract(sampled)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extraction complete", "colours", palette.Len(), "sampled", palette.Sampled, "hex", palette.ToHex())
	if logger.IsDebug() {
		logger.Debug("palette\n" + palette.String())
	}

	preview := e.preview && e.output == "" && isTerminal(cmd.OutOrStdout())
	if e.preview && !preview {
		logger.Debug("preview disabled, output is not a terminal")
	}

	out, err := formatPalette(palette, e.format, preview)
	if err != nil {
		return err
	}

	if e.output != "" {
		if err := os.WriteFile(e.output, []byte(out), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("palette written", "path", e.output)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// formatPalette renders the palette in one of the supported formats.
func formatPalette(palette *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case "markers":
		return markerStart + "\n" + formatLines(palette, preview, colour.RGB.Hex) + markerEnd + "\n", nil
	case "hex":
		return formatLines(palette, preview, colour.RGB.Hex), nil
	case "rgb":
		return formatLines(palette, preview, colour.RGB.String), nil
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: markers, hex, rgb, json)", format)
	}
}

func formatLines(palette *colour.Palette, preview bool, render func(colour.RGB) string) string {
	var b strings.Builder
	for _, entry := range palette.Entries {
		if preview {
			b.WriteString(colour.ColourPreview(entry.Colour, 4))
			b.WriteString(" ")
		}
		b.WriteString(render(entry.Colour))
		if preview && entry.Label != "" {
			b.WriteString("  " + entry.Label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
