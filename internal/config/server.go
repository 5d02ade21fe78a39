package config

import (
	gazeHandler "GazeDashboard/internal/api/gaze/handler"
	gazeRepository "GazeDashboard/internal/api/gaze/repository"
	gazeService "GazeDashboard/internal/api/gaze/service"
	"GazeDashboard/internal/middleware"
	"GazeDashboard/pkg/redis"
	"GazeDashboard/pkg/s3"
	"GazeDashboard/pkg/utils"
	"GazeDashboard/web"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	settings   Settings
	middleware middleware.Middleware
	validator  *validator.Validate
	utils      utils.IUtils
	handlers   []handler
	cache      redis.IRedis
	s3Client   s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.Options{})
	}
	if server.cache == nil {
		server.cache = redis.NewNoop()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithSettings(settings Settings) ServerOption {
	return func(s *Server) error {
		s.settings = settings
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Options{
			Rate:  rate.Limit(s.settings.RateLimit),
			Burst: s.settings.RateBurst,
		})
		return nil
	}
}

// WithRedisCache enables the sample cache when an address is configured.
func WithRedisCache() ServerOption {
	return func(s *Server) error {
		if s.settings.RedisAddress == "" {
			if s.log != nil {
				s.log.Info("REDIS_ADDRESS not set, sample cache disabled")
			}
			return nil
		}
		s.cache = redis.New(redis.Options{
			Address:  s.settings.RedisAddress,
			Password: s.settings.RedisPassword,
			DB:       s.settings.RedisDB,
		})
		return nil
	}
}

// WithS3Client enables upload archiving when a bucket is configured.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if s.settings.AWSBucketName == "" {
			if s.log != nil {
				s.log.Info("AWS_BUCKET_NAME not set, uploads will not be archived")
			}
			return nil
		}
		client, err := s3.New(s3.Options{
			Region:          s.settings.AWSRegion,
			AccessKeyID:     s.settings.AWSAccessKeyID,
			SecretAccessKey: s.settings.AWSSecretAccessKey,
			BucketName:      s.settings.AWSBucketName,
			Prefix:          s.settings.AWSPrefix,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Gaze Domain
	gazeRepo := gazeRepository.New(gazeRepository.Config{
		DataDir:  s.settings.DataDir,
		FileExt:  s.settings.FileExt,
		Profile:  s.settings.Profile,
		CacheTTL: s.settings.CacheTTL,
	}, s.cache, s.log)
	gazeServices := gazeService.NewGazeService(s.log, gazeRepo, s.s3Client, s.utils, s.settings.Profile)
	gazeHandlers := gazeHandler.New(s.log, s.validator, s.middleware, gazeServices)

	s.handlers = append(s.handlers, gazeHandlers)
}

// App mounts middleware, the dashboard page and every handler. Run calls it; tests use it
// directly with fiber's app.Test.
func (s *Server) App() *fiber.App {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	s.setupHealthCheck()
	s.setupDashboard()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	return s.engine
}

func (s *Server) Run() error {
	app := s.App()

	s.log.WithFields(logrus.Fields{
		"port":     s.settings.Port,
		"data_dir": s.settings.DataDir,
		"headset":  s.settings.Profile.Name,
	}).Info("Starting gaze dashboard")

	return app.Listen(fmt.Sprintf(":%s", s.settings.Port))
}

func (s *Server) Shutdown() error {
	if err := s.cache.Close(); err != nil {
		s.log.Warnf("Failed to close cache: %v", err)
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) setupDashboard() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.Send(web.Index)
	})
}
