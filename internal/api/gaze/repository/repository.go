package gazeRepository

import (
	"GazeDashboard/internal/entity"
	"GazeDashboard/pkg/redis"
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	DataDir  string
	FileExt  string
	Profile  entity.HeadsetProfile
	CacheTTL time.Duration
}

type Repository interface {
	ListParticipants(ctx context.Context) ([]entity.Participant, error)
	GetParticipant(ctx context.Context, id string) (entity.Participant, error)
	LoadSamples(ctx context.Context, participant entity.Participant) ([]entity.Sample, error)
	ParseSamples(ctx context.Context, r io.Reader, source string) ([]entity.Sample, error)
}

type repository struct {
	cfg   Config
	cache redis.IRedis
	log   *logrus.Logger
}

func New(cfg Config, cache redis.IRedis, log *logrus.Logger) Repository {
	if cfg.FileExt == "" {
		cfg.FileExt = ".txt"
	}
	if cache == nil {
		cache = redis.NewNoop()
	}

	return &repository{
		cfg:   cfg,
		cache: cache,
		log:   log,
	}
}
