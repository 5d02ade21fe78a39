package entity

// HeadsetProfile describes the per-eye display of a headset.
type HeadsetProfile struct {
	Name   string  `json:"name" validate:"required"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	FovX   float64 `json:"fov_x" validate:"gt=0,lte=360"`
	// FovY is carried for completeness; radius conversion only uses FovX.
	FovY float64 `json:"fov_y" validate:"gt=0,lte=360"`
}

// DK2 is the Oculus Rift DK2 profile the recordings were made with.
var DK2 = HeadsetProfile{
	Name:   "DK2",
	Width:  960,
	Height: 1080,
	FovX:   90,
	FovY:   100,
}

func (p HeadsetProfile) Center() (float64, float64) {
	return p.Width / 2, p.Height / 2
}
