// Package plot renders the gaze scatter and the center proportion bar chart with go-chart.
package plot

import (
	"bytes"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"

	ContentTypeSVG = "image/svg+xml"
	ContentTypePNG = "image/png"
)

type Options struct {
	Format string
	Width  int
	Height int
	// Aggregate switches titles and palette to the all-participants variant.
	Aggregate bool
}

type Artifact struct {
	ContentType string
	Body        []byte
}

func provider(format string) (chart.RendererProvider, string, error) {
	switch format {
	case "", FormatSVG:
		return chart.SVG, ContentTypeSVG, nil
	case FormatPNG:
		return chart.PNG, ContentTypePNG, nil
	default:
		return nil, "", fmt.Errorf("unsupported format %q", format)
	}
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func render(c renderable, format string) (Artifact, error) {
	rp, contentType, err := provider(format)
	if err != nil {
		return Artifact{}, err
	}

	var buf bytes.Buffer
	if err := c.Render(rp, &buf); err != nil {
		return Artifact{}, err
	}

	return Artifact{ContentType: contentType, Body: buf.Bytes()}, nil
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
