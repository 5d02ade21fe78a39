package plot

import (
	"GazeDashboard/internal/entity"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	insideColor           = drawing.ColorFromHex("2ca02c")
	outsideColor          = drawing.ColorFromHex("1f77b4")
	aggregateInsideColor  = drawing.ColorFromHex("ff7f0e")
	aggregateOutsideColor = drawing.ColorFromHex("800080")
)

// Histogram draws the inside/outside proportions of a region as two bars on a fixed [0, 1] axis.
func Histogram(region entity.Region, opts Options) (Artifact, error) {
	title := "Fixation Proportion Inside and Outside Center"
	inside, outside := insideColor, outsideColor
	if opts.Aggregate {
		title = "Aggregate " + title
		inside, outside = aggregateInsideColor, aggregateOutsideColor
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 480
	}
	if height == 0 {
		height = 320
	}

	bc := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 10},
		Width:      width,
		Height:     height,
		BarWidth:   width / 4,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  "Proportion of Fixations",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 0.25, Label: "0.25"},
				{Value: 0.5, Label: "0.5"},
				{Value: 0.75, Label: "0.75"},
				{Value: 1, Label: "1"},
			},
		},
		Bars: []chart.Value{
			{
				Label: fmt.Sprintf("Inside Center (%s)", formatPercent(region.InsideRatio)),
				Value: region.InsideRatio,
				Style: chart.Style{FillColor: inside, StrokeColor: inside},
			},
			{
				Label: fmt.Sprintf("Outside Center (%s)", formatPercent(region.OutsideRatio)),
				Value: region.OutsideRatio,
				Style: chart.Style{FillColor: outside, StrokeColor: outside},
			},
		},
	}

	return render(bc, opts.Format)
}
