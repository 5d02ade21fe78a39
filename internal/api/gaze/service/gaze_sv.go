package gazeService

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/internal/entity"
	contextPkg "GazeDashboard/pkg/context"
	"GazeDashboard/pkg/plot"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *gazeService) ListParticipants(ctx context.Context) (*gaze.ParticipantListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	participants, err := s.gazeRepo.ListParticipants(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list participants")
		return nil, err
	}

	if len(participants) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("No participant files found")
	}

	response := &gaze.ParticipantListResponse{
		Participants: make([]gaze.ParticipantResponse, 0, len(participants)),
		Total:        len(participants),
	}
	for _, p := range participants {
		response.Participants = append(response.Participants, gaze.ParticipantResponse{
			ID:         p.ID,
			Size:       p.Size,
			ModifiedAt: p.ModifiedAt.Format(time.RFC3339),
		})
	}

	return response, nil
}

func (s *gazeService) Summary(ctx context.Context, participantID string, radiusDeg float64) (*gaze.SummaryResponse, error) {
	if !gaze.ValidRadius(radiusDeg) {
		return nil, gaze.ErrInvalidRadius
	}

	samples, err := s.loadSamples(ctx, participantID)
	if err != nil {
		return nil, err
	}

	region := ComputeRegion(samples, s.profile, radiusDeg)

	return &gaze.SummaryResponse{
		ParticipantID: participantID,
		Profile:       s.profile,
		Region:        region,
		Warning:       s.emptyWarning(ctx, participantID, region),
	}, nil
}

// Render runs the whole pipeline for one participant (or the aggregate) and returns both charts.
func (s *gazeService) Render(ctx context.Context, req gaze.RenderRequest) (*gaze.RenderResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !gaze.ValidRadius(req.RadiusDeg) {
		return nil, gaze.ErrInvalidRadius
	}
	if req.Format != "" && req.Format != gaze.FormatSVG && req.Format != gaze.FormatPNG {
		return nil, gaze.ErrInvalidFormat
	}

	start := time.Now()

	samples, err := s.loadSamples(ctx, req.ParticipantID)
	if err != nil {
		return nil, err
	}

	region := ComputeRegion(samples, s.profile, req.RadiusDeg)

	scatter, histogram, err := s.renderCharts(ctx, samples, region, plot.Options{
		Format:    req.Format,
		Aggregate: req.ParticipantID == gaze.AggregateID,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"participant":  req.ParticipantID,
		"radius_deg":   req.RadiusDeg,
		"samples":      region.Total,
		"inside_ratio": region.InsideRatio,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	}).Debug("Rendered gaze charts")

	return &gaze.RenderResult{
		ParticipantID: req.ParticipantID,
		Profile:       s.profile,
		Region:        region,
		Scatter:       scatter,
		Histogram:     histogram,
		Warning:       s.emptyWarning(ctx, req.ParticipantID, region),
	}, nil
}

func (s *gazeService) loadSamples(ctx context.Context, participantID string) ([]entity.Sample, error) {
	if participantID == gaze.AggregateID {
		return s.loadAggregate(ctx)
	}

	requestID := contextPkg.GetRequestID(ctx)

	participant, err := s.gazeRepo.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, gaze.ErrParticipantNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"participant": participantID,
			}).Warn("Participant not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"participant": participantID,
				"error":       err.Error(),
			}).Error("Failed to resolve participant")
		}
		return nil, err
	}

	samples, err := s.gazeRepo.LoadSamples(ctx, participant)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"participant": participantID,
			"error":       err.Error(),
		}).Error("Failed to load samples")
		return nil, err
	}

	return samples, nil
}

func (s *gazeService) loadAggregate(ctx context.Context) ([]entity.Sample, error) {
	requestID := contextPkg.GetRequestID(ctx)

	participants, err := s.gazeRepo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	var all []entity.Sample
	for _, p := range participants {
		samples, err := s.gazeRepo.LoadSamples(ctx, p)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"participant": p.ID,
				"error":       err.Error(),
			}).Error("Failed to load samples for aggregate")
			return nil, err
		}
		all = append(all, samples...)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"participants": len(participants),
		"samples":      len(all),
	}).Debug("Loaded aggregate samples")

	return all, nil
}

func (s *gazeService) renderCharts(ctx context.Context, samples []entity.Sample, region entity.Region, opts plot.Options) (gaze.Artifact, gaze.Artifact, error) {
	requestID := contextPkg.GetRequestID(ctx)

	scatter, err := plot.Scatter(samples, region, s.profile, opts)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"chart":      "scatter",
			"error":      err.Error(),
		}).Error("Failed to render chart")
		return gaze.Artifact{}, gaze.Artifact{}, gaze.ErrRenderChart
	}

	histogram, err := plot.Histogram(region, opts)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"chart":      "histogram",
			"error":      err.Error(),
		}).Error("Failed to render chart")
		return gaze.Artifact{}, gaze.Artifact{}, gaze.ErrRenderChart
	}

	return gaze.Artifact(scatter), gaze.Artifact(histogram), nil
}

func (s *gazeService) emptyWarning(ctx context.Context, participantID string, region entity.Region) string {
	if region.Total > 0 {
		return ""
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  contextPkg.GetRequestID(ctx),
		"participant": participantID,
		"error":       gaze.ErrEmptyDataset.Error(),
	}).Warn("Rendering empty dataset")

	return gaze.ErrEmptyDataset.Error()
}
