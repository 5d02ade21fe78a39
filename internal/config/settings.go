package config

import (
	"GazeDashboard/internal/entity"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Settings is the process configuration read from the environment (and .env).
type Settings struct {
	Port    string `validate:"required,numeric"`
	DataDir string `validate:"required"`
	FileExt string `validate:"required,startswith=."`
	Profile entity.HeadsetProfile

	RedisAddress  string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	CacheTTL      time.Duration

	AWSRegion          string `validate:"required_with=AWSBucketName"`
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSBucketName      string
	AWSPrefix          string

	RateLimit float64 `validate:"gt=0"`
	RateBurst int     `validate:"gt=0"`
}

func LoadSettings(validate *validator.Validate) (Settings, error) {
	var errs []error

	s := Settings{
		Port:    envString("APP_PORT", "3000"),
		DataDir: envString("GAZE_DATA_DIR", "./data"),
		FileExt: envString("GAZE_FILE_EXT", ".txt"),
		Profile: entity.HeadsetProfile{
			Name:   envString("HEADSET_NAME", entity.DK2.Name),
			Width:  envFloat("HEADSET_WIDTH", entity.DK2.Width, &errs),
			Height: envFloat("HEADSET_HEIGHT", entity.DK2.Height, &errs),
			FovX:   envFloat("HEADSET_FOV_X", entity.DK2.FovX, &errs),
			FovY:   envFloat("HEADSET_FOV_Y", entity.DK2.FovY, &errs),
		},
		RedisAddress:       os.Getenv("REDIS_ADDRESS"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            envInt("REDIS_DB", 0, &errs),
		CacheTTL:           envDuration("CACHE_TTL", 10*time.Minute, &errs),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucketName:      os.Getenv("AWS_BUCKET_NAME"),
		AWSPrefix:          envString("AWS_PREFIX", "gaze-uploads"),
		RateLimit:          envFloat("RATE_LIMIT", 50, &errs),
		RateBurst:          envInt("RATE_BURST", 100, &errs),
	}

	if len(errs) > 0 {
		return Settings{}, errs[0]
	}

	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a number", key, v))
		return def
	}
	return f
}

func envInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return i
}

func envDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}
