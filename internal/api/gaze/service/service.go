package gazeService

import (
	"GazeDashboard/internal/api/gaze"
	gazeRepository "GazeDashboard/internal/api/gaze/repository"
	"GazeDashboard/internal/entity"
	"GazeDashboard/pkg/s3"
	"GazeDashboard/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

type IGazeService interface {
	ListParticipants(ctx context.Context) (*gaze.ParticipantListResponse, error)
	Summary(ctx context.Context, participantID string, radiusDeg float64) (*gaze.SummaryResponse, error)
	Render(ctx context.Context, req gaze.RenderRequest) (*gaze.RenderResult, error)
	AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, radiusDeg float64) (*gaze.UploadResponse, error)
}

type gazeService struct {
	log      *logrus.Logger
	gazeRepo gazeRepository.Repository
	s3Client s3.ItfS3
	utils    utils.IUtils
	profile  entity.HeadsetProfile
}

// NewGazeService wires the pipeline. s3Client may be nil, in which case uploads are not archived.
func NewGazeService(
	log *logrus.Logger,
	gazeRepo gazeRepository.Repository,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	profile entity.HeadsetProfile,
) IGazeService {
	return &gazeService{
		log:      log,
		gazeRepo: gazeRepo,
		s3Client: s3Client,
		utils:    utils,
		profile:  profile,
	}
}
