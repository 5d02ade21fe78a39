package plot

import (
	"GazeDashboard/internal/entity"
	"bytes"
	"strings"
	"testing"
)

func testRegion() entity.Region {
	return entity.Region{
		RadiusDeg:    10,
		RadiusPx:     960 * 10.0 / 90,
		CenterX:      480,
		CenterY:      540,
		Total:        3,
		Inside:       2,
		Outside:      1,
		InsideRatio:  2.0 / 3,
		OutsideRatio: 1 - 2.0/3,
	}
}

func testSamples() []entity.Sample {
	return []entity.Sample{
		{PixelX: 480, PixelY: 540},
		{PixelX: 500, PixelY: 560},
		{PixelX: 10, PixelY: 20},
	}
}

func TestScatterSVG(t *testing.T) {
	samples := testSamples()
	before := append([]entity.Sample(nil), samples...)

	art, err := Scatter(samples, testRegion(), entity.DK2, Options{})
	if err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}

	if art.ContentType != ContentTypeSVG {
		t.Errorf("Expected %s, got %s", ContentTypeSVG, art.ContentType)
	}
	body := string(art.Body)
	if !strings.Contains(body, "<svg") {
		t.Fatal("Expected an svg document")
	}
	if !strings.Contains(body, "Inside: 2, Outside: 1") {
		t.Error("Expected the inside/outside counts in the title")
	}
	if !strings.Contains(body, "<circle") {
		t.Error("Expected circles for the samples and region overlay")
	}

	for i := range samples {
		if samples[i] != before[i] {
			t.Fatalf("Sample %d was mutated", i)
		}
	}
}

func TestScatterEmptyDataset(t *testing.T) {
	region := entity.Region{RadiusDeg: 1, RadiusPx: 960.0 / 90, CenterX: 480, CenterY: 540}

	art, err := Scatter(nil, region, entity.DK2, Options{})
	if err != nil {
		t.Fatalf("Scatter with no samples failed: %v", err)
	}
	if len(art.Body) == 0 {
		t.Error("Expected a rendered chart")
	}
}

func TestScatterAggregateTitle(t *testing.T) {
	art, err := Scatter(testSamples(), testRegion(), entity.DK2, Options{Aggregate: true})
	if err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	if !strings.Contains(string(art.Body), "Aggregate Eye Position Fixations") {
		t.Error("Expected aggregate title")
	}
}

func TestHistogramPNG(t *testing.T) {
	art, err := Histogram(testRegion(), Options{Format: FormatPNG})
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	if art.ContentType != ContentTypePNG {
		t.Errorf("Expected %s, got %s", ContentTypePNG, art.ContentType)
	}
	if !bytes.HasPrefix(art.Body, []byte("\x89PNG")) {
		t.Error("Expected a PNG signature")
	}
}

func TestHistogramBounds(t *testing.T) {
	tests := []struct {
		name   string
		inside float64
	}{
		{"all outside", 0},
		{"all inside", 1},
		{"split", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := entity.Region{InsideRatio: tt.inside, OutsideRatio: 1 - tt.inside}
			art, err := Histogram(region, Options{})
			if err != nil {
				t.Fatalf("Histogram failed: %v", err)
			}
			if !strings.Contains(string(art.Body), "Fixation Proportion Inside and Outside Center") {
				t.Error("Expected histogram title")
			}
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Histogram(testRegion(), Options{Format: "gif"}); err == nil {
		t.Error("Expected an error for gif output")
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(2.0 / 3); got != "66.7%" {
		t.Errorf("Expected 66.7%%, got %s", got)
	}
}
