package gazeHandler

import (
	gazeService "GazeDashboard/internal/api/gaze/service"
	"GazeDashboard/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type GazeHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	gazeService gazeService.IGazeService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	gs gazeService.IGazeService,
) *GazeHandler {
	return &GazeHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		gazeService: gs,
	}
}

func (h *GazeHandler) Start(srv fiber.Router) {
	srv.Get("/participants", h.middleware.NewRateLimiter, h.GetParticipants)

	gaze := srv.Group("/gaze")

	// Dashboard shell: one render per control change
	gaze.Get("/shell", h.requireUpgrade, websocket.New(h.Shell))

	gaze.Post("/upload", h.middleware.NewRateLimiter, h.UploadFile)

	// :participant may be "aggregate" for all participants combined
	gaze.Get("/:participant/summary", h.middleware.NewRateLimiter, h.GetSummary)
	gaze.Get("/:participant/scatter", h.middleware.NewRateLimiter, h.GetScatter)
	gaze.Get("/:participant/histogram", h.middleware.NewRateLimiter, h.GetHistogram)
}

func (h *GazeHandler) requireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
