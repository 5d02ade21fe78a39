package gazeService

import (
	"GazeDashboard/internal/api/gaze"
	contextPkg "GazeDashboard/pkg/context"
	"GazeDashboard/pkg/plot"
	"context"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
)

const maxUploadSize = 10 * 1024 * 1024

// AnalyzeUpload runs the pipeline on an uploaded log instead of a participant from the data
// directory. The upload is archived when object storage is configured.
func (s *gazeService) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, radiusDeg float64) (*gaze.UploadResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !gaze.ValidRadius(radiusDeg) {
		return nil, gaze.ErrInvalidRadius
	}
	if file == nil {
		return nil, gaze.ErrInvalidUpload
	}
	if file.Size > maxUploadSize {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   file.Filename,
			"size":       file.Size,
		}).Warn("Upload exceeds size limit")
		return nil, gaze.ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open uploaded file")
		return nil, gaze.ErrInvalidUpload
	}
	defer src.Close()

	samples, err := s.gazeRepo.ParseSamples(ctx, src, file.Filename)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   file.Filename,
			"error":      err.Error(),
		}).Warn("Uploaded file could not be parsed")
		return nil, err
	}

	region := ComputeRegion(samples, s.profile, radiusDeg)

	scatter, histogram, err := s.renderCharts(ctx, samples, region, plot.Options{Format: plot.FormatSVG})
	if err != nil {
		return nil, err
	}

	response := &gaze.UploadResponse{
		ShellResponse: gaze.ShellResponse{
			SummaryResponse: gaze.SummaryResponse{
				ParticipantID: file.Filename,
				Profile:       s.profile,
				Region:        region,
				Warning:       s.emptyWarning(ctx, file.Filename, region),
			},
			ScatterSVG:   string(scatter.Body),
			HistogramSVG: string(histogram.Body),
		},
	}

	if s.s3Client != nil {
		response.ArchivedAs, response.ArchiveURL = s.archive(ctx, file)
	}

	return response, nil
}

func (s *gazeService) archive(ctx context.Context, file *multipart.FileHeader) (string, string) {
	requestID := contextPkg.GetRequestID(ctx)

	key, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return "", ""
	}

	objectKey, err := s.s3Client.UploadFile(file, key)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   file.Filename,
			"error":      err.Error(),
		}).Warn("Failed to archive upload")
		return "", ""
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"object_key": objectKey,
	}).Info("Archived uploaded file")

	url, err := s.s3Client.PresignUrl(objectKey)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"object_key": objectKey,
			"error":      err.Error(),
		}).Warn("Failed to create presigned URL for archived upload")
		return objectKey, ""
	}

	return objectKey, url
}
