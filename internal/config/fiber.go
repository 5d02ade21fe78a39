package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:               "Gaze Center Dashboard",
			BodyLimit:             12 * 1024 * 1024,
			DisableKeepalive:      false,
			StrictRouting:         false,
			CaseSensitive:         true,
			UnescapePath:          true,
			DisableStartupMessage: logger.GetLevel() < logrus.DebugLevel,
			JSONEncoder:           jsoniter.Marshal,
			JSONDecoder:           jsoniter.Unmarshal,
		})

	return app
}
