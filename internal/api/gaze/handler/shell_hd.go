package gazeHandler

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/internal/middleware"
	contextPkg "GazeDashboard/pkg/context"
	"GazeDashboard/pkg/log"
	"GazeDashboard/pkg/response"
	"context"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

const shellIdleTimeout = 10 * time.Minute

// Shell re-runs the pipeline for every message the dashboard sends. Messages are handled one at
// a time, so a connection never has more than one render in flight.
func (h *GazeHandler) Shell(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}

	h.log.WithFields(log.Fields{"request_id": requestID}).Info("Dashboard shell connected")
	defer h.log.WithFields(log.Fields{"request_id": requestID}).Info("Dashboard shell disconnected")

	for {
		if err := c.SetReadDeadline(time.Now().Add(shellIdleTimeout)); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to set shell read deadline")
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Dashboard shell closed unexpectedly")
			}
			return
		}

		if messageType != websocket.TextMessage {
			h.log.WithFields(log.Fields{
				"request_id":   requestID,
				"message_type": messageType,
			}).Warn("Ignoring non-text shell message")
			continue
		}

		resp := h.handleShellMessage(requestID, message)

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to set shell write deadline")
			return
		}
		if err := c.WriteJSON(resp); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to write shell response")
			return
		}
	}
}

func (h *GazeHandler) handleShellMessage(requestID string, message []byte) gaze.ShellResponse {
	var msg gaze.ShellMessage
	if err := jsoniter.Unmarshal(message, &msg); err != nil {
		return gaze.ShellResponse{Error: "invalid message: " + err.Error()}
	}

	req := gaze.RenderRequest{
		ParticipantID: msg.ParticipantID,
		RadiusDeg:     msg.RadiusDeg,
		Format:        gaze.FormatSVG,
	}
	if req.RadiusDeg == 0 {
		req.RadiusDeg = gaze.DefaultRadiusDeg
	}

	resp := gaze.ShellResponse{
		SummaryResponse: gaze.SummaryResponse{ParticipantID: msg.ParticipantID},
	}

	if err := h.validator.Struct(req); err != nil {
		resp.Error = "Validation failed: " + err.Error()
		return resp
	}

	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 10*time.Second)
	defer cancel()

	result, err := h.gazeService.Render(ctx, req)
	if err != nil {
		var respErr *response.Error
		if !errors.As(err, &respErr) {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Unexpected shell render error")
		}
		resp.Error = err.Error()
		return resp
	}

	resp.Profile = result.Profile
	resp.Region = result.Region
	resp.Warning = result.Warning
	resp.ScatterSVG = string(result.Scatter.Body)
	resp.HistogramSVG = string(result.Histogram.Body)

	return resp
}
