package gazeService

import (
	"GazeDashboard/internal/entity"
	"math"
)

// RadiusPixels converts a radius in degrees to display pixels with a flat linear mapping over the
// horizontal field of view. The vertical FOV is intentionally not consulted.
func RadiusPixels(profile entity.HeadsetProfile, radiusDeg float64) float64 {
	return profile.Width * (radiusDeg / profile.FovX)
}

// ComputeRegion classifies every sample as inside (distance <= radius) or outside the center
// circle. An empty sample set yields zero inside ratio.
func ComputeRegion(samples []entity.Sample, profile entity.HeadsetProfile, radiusDeg float64) entity.Region {
	cx, cy := profile.Center()
	radius := RadiusPixels(profile, radiusDeg)

	inside := 0
	for _, s := range samples {
		dx, dy := s.PixelX-cx, s.PixelY-cy
		if math.Sqrt(dx*dx+dy*dy) <= radius {
			inside++
		}
	}

	total := len(samples)
	var ratio float64
	if total > 0 {
		ratio = float64(inside) / float64(total)
	}

	return entity.Region{
		RadiusDeg:    radiusDeg,
		RadiusPx:     radius,
		CenterX:      cx,
		CenterY:      cy,
		Total:        total,
		Inside:       inside,
		Outside:      total - inside,
		InsideRatio:  ratio,
		OutsideRatio: 1 - ratio,
	}
}
