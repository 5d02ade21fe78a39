package handlerUtil

import (
	"GazeDashboard/internal/api/gaze"
	"GazeDashboard/pkg/log"
	"GazeDashboard/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var parseErr *gaze.ParseError
	if errors.As(err, &parseErr) {
		h.logger.WithFields(fields).Warn("Participant file is malformed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   err.Error(),
			Code:    "MALFORMED_FILE",
			Details: parseErr.Column,
		})
	}

	var fsErr *gaze.FileSystemError
	if errors.As(err, &fsErr) {
		traceID := log.ErrorWithTraceID(h.logger, fields, "Gaze data is not readable")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   err.Error(),
			Code:    "DATA_UNREADABLE",
			Details: traceID,
		})
	}

	if errors.Is(err, gaze.ErrParticipantNotFound) {
		h.logger.WithFields(fields).Warn("Participant not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Participant not found",
			Code:  "PARTICIPANT_NOT_FOUND",
		})
	}

	if code := response.StatusCode(err, 0); code != 0 {
		fields["code"] = code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
