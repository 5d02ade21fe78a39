package gaze

import (
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var participantIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\- ]*$`)

// ValidRadius reports whether deg lies in the slider range and on its 0.5 degree grid.
func ValidRadius(deg float64) bool {
	if math.IsNaN(deg) || deg < MinRadiusDeg || deg > MaxRadiusDeg {
		return false
	}
	steps := (deg - MinRadiusDeg) / RadiusStepDeg
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

func ValidParticipantID(id string) bool {
	return participantIDPattern.MatchString(id) && id != "." && id != ".."
}

// RegisterValidations adds the gaze specific validator tags.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("radius_step", func(fl validator.FieldLevel) bool {
		return ValidRadius(fl.Field().Float())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("participant_id", func(fl validator.FieldLevel) bool {
		return ValidParticipantID(fl.Field().String())
	})
}
