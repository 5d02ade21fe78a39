package entity

// Region is the center region classification for one pipeline run.
type Region struct {
	RadiusDeg    float64 `json:"radius_deg"`
	RadiusPx     float64 `json:"radius_px"`
	CenterX      float64 `json:"center_x"`
	CenterY      float64 `json:"center_y"`
	Total        int     `json:"total"`
	Inside       int     `json:"inside"`
	Outside      int     `json:"outside"`
	InsideRatio  float64 `json:"inside_ratio"`
	OutsideRatio float64 `json:"outside_ratio"`
}
