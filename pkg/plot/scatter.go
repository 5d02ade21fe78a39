package plot

import (
	"GazeDashboard/internal/entity"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	fixationColor = drawing.Color{R: 128, G: 0, B: 128, A: 128}
	regionColor   = drawing.ColorRed.WithAlpha(77)
	centerColor   = drawing.ColorRed
)

// Scatter draws every sample at its pixel coordinate on a canvas spanning the display, with the
// y axis running top to bottom like screen coordinates, and overlays the center region.
func Scatter(samples []entity.Sample, region entity.Region, profile entity.HeadsetProfile, opts Options) (Artifact, error) {
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.PixelX
		ys[i] = s.PixelY
	}

	xRange := &chart.ContinuousRange{Min: 0, Max: profile.Width}
	yRange := &chart.ContinuousRange{Min: 0, Max: profile.Height, Descending: true}

	series := make([]chart.Series, 0, 2)
	if len(samples) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "Fixations",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2.5,
				DotColor:    fixationColor,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	// Always present so the chart has a visible series even for an empty dataset.
	series = append(series, chart.ContinuousSeries{
		Name: fmt.Sprintf("Center (%g° radius)", region.RadiusDeg),
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    centerColor,
		},
		XValues: []float64{region.CenterX},
		YValues: []float64{region.CenterY},
	})

	title := fmt.Sprintf("Eye Position Fixations on %s Headset Screen", profile.Name)
	if opts.Aggregate {
		title = "Aggregate Eye Position Fixations Across All Participants"
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 640
	}
	if height == 0 {
		height = int(float64(width) * profile.Height / profile.Width)
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s (Inside: %d, Outside: %d)", title, region.Inside, region.Outside),
		TitleStyle: chart.Style{FontSize: 10},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Horizontal Position (pixels)",
			Range:          xRange,
			Ticks:          axisTicks(profile.Width, 4),
			ValueFormatter: pixelFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Vertical Position (pixels)",
			Range:          yRange,
			Ticks:          axisTicks(profile.Height, 4),
			ValueFormatter: pixelFormatter,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{
		regionOverlay(region, profile),
		chart.Legend(&ch),
	}

	return render(ch, opts.Format)
}

// regionOverlay maps the region from display pixels into the plot canvas. The radius is scaled
// horizontally, matching how the radius itself is derived from the horizontal FOV.
func regionOverlay(region entity.Region, profile entity.HeadsetProfile) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		sx := float64(cb.Width()) / profile.Width
		sy := float64(cb.Height()) / profile.Height

		x := cb.Left + int(region.CenterX*sx)
		y := cb.Top + int(region.CenterY*sy)

		r.SetFillColor(regionColor)
		r.SetStrokeColor(regionColor)
		r.SetStrokeWidth(1)
		r.Circle(region.RadiusPx*sx, x, y)
		r.FillStroke()
	}
}

func axisTicks(max float64, n int) []chart.Tick {
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := max * float64(i) / float64(n)
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

func pixelFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
