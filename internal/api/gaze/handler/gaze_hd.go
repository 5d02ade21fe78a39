package gazeHandler

import (
	"GazeDashboard/internal/api/gaze"
	contextPkg "GazeDashboard/pkg/context"
	"GazeDashboard/pkg/handlerUtil"
	"GazeDashboard/pkg/log"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *GazeHandler) GetParticipants(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list participants request")

	result, err := h.gazeService.ListParticipants(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_participants")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *GazeHandler) GetSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing gaze summary request")

	req, err := h.renderRequest(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.gazeService.Summary(c, req.ParticipantID, req.RadiusDeg)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "gaze_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *GazeHandler) GetScatter(ctx *fiber.Ctx) error {
	return h.sendChart(ctx, "gaze_scatter", func(r *gaze.RenderResult) gaze.Artifact {
		return r.Scatter
	})
}

func (h *GazeHandler) GetHistogram(ctx *fiber.Ctx) error {
	return h.sendChart(ctx, "gaze_histogram", func(r *gaze.RenderResult) gaze.Artifact {
		return r.Histogram
	})
}

func (h *GazeHandler) sendChart(ctx *fiber.Ctx, operation string, pick func(*gaze.RenderResult) gaze.Artifact) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing gaze chart request")

	req, err := h.renderRequest(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.gazeService.Render(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		artifact := pick(result)
		if result.Warning != "" {
			ctx.Set("X-Gaze-Warning", result.Warning)
		}
		ctx.Set(fiber.HeaderContentType, artifact.ContentType)
		ctx.Set(fiber.HeaderCacheControl, "no-store")
		return ctx.Status(fiber.StatusOK).Send(artifact.Body)
	}
}

func (h *GazeHandler) UploadFile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing gaze upload request")

	radius, err := parseRadius(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("file is required"), ctx.Path())
	}

	result, err := h.gazeService.AnalyzeUpload(c, file, radius)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "gaze_upload")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *GazeHandler) renderRequest(ctx *fiber.Ctx) (gaze.RenderRequest, error) {
	radius, err := parseRadius(ctx)
	if err != nil {
		return gaze.RenderRequest{}, err
	}

	req := gaze.RenderRequest{
		ParticipantID: ctx.Params("participant"),
		RadiusDeg:     radius,
		Format:        ctx.Query("format", gaze.FormatSVG),
	}

	if err := h.validator.Struct(req); err != nil {
		return gaze.RenderRequest{}, err
	}

	return req, nil
}

func parseRadius(ctx *fiber.Ctx) (float64, error) {
	raw := ctx.Query("radius")
	if raw == "" {
		return gaze.DefaultRadiusDeg, nil
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("radius must be a number")
	}

	return radius, nil
}
