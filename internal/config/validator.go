package config

import (
	"GazeDashboard/internal/api/gaze"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	if err := gaze.RegisterValidations(v); err != nil {
		// tags are static; failure here is a programming error
		panic(err)
	}
	return v
}
