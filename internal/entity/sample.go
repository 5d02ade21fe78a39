package entity

// Sample is one row of a participant log plus the derived gaze coordinates.
type Sample struct {
	Trial     int     `json:"trial"`
	Date      string  `json:"date"`
	CoreTime  string  `json:"core_time"`
	ExpTime   string  `json:"exp_time"`
	Pitch     float64 `json:"pitch"`
	Yaw       float64 `json:"yaw"`
	Roll      float64 `json:"roll"`
	RightX    float64 `json:"right_x"`
	RightY    float64 `json:"right_y"`
	LeftX     float64 `json:"left_x"`
	LeftY     float64 `json:"left_y"`
	RightConf float64 `json:"right_conf"`
	LeftConf  float64 `json:"left_conf"`

	EyeX   float64 `json:"eye_x"`
	EyeY   float64 `json:"eye_y"`
	PixelX float64 `json:"pixel_x"`
	PixelY float64 `json:"pixel_y"`
}

// Derive fills the averaged and pixel-space coordinates for the given profile.
func (s *Sample) Derive(profile HeadsetProfile) {
	s.EyeX = (s.RightX + s.LeftX) / 2
	s.EyeY = (s.RightY + s.LeftY) / 2
	s.PixelX = s.EyeX * profile.Width
	s.PixelY = s.EyeY * profile.Height
}
