package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/utils"
)

// AttemptHandler exposes the lesson attempt lifecycle endpoints.
type AttemptHandler struct {
	service service.AttemptService
	logger  zerolog.Logger
}

// NewAttemptHandler creates a new handler instance.
func NewAttemptHandler(service service.AttemptService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		service: service,
		logger:  logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// RegisterStudentRoutes attaches attempt creation under a student group.
func (h *AttemptHandler) RegisterStudentRoutes(router fiber.Router) {
	router.Post("/attempts", h.start)
}

// RegisterAttemptRoutes attaches the per-attempt endpoints.
func (h *AttemptHandler) RegisterAttemptRoutes(router fiber.Router) {
	router.Post("/:id/responses", h.recordResponse)
	router.Post("/:id/complete", h.complete)
}

func (h *AttemptHandler) start(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttemptStartRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.service.Start(c.Context(), studentID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		default:
			h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to start attempt")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to start attempt")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attempt started", attempt)
}

func (h *AttemptHandler) recordResponse(c *fiber.Ctx) error {
	attemptID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ResponseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.service.RecordResponse(c.Context(), attemptID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		case errors.Is(err, service.ErrAttemptNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "attempt not found")
		case errors.Is(err, service.ErrAttemptCompleted):
			return utils.SendError(c, fiber.StatusConflict, "attempt already completed")
		default:
			h.logger.Error().Err(err).Uint("attempt_id", attemptID).Msg("failed to record response")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record response")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "response recorded", attempt)
}

func (h *AttemptHandler) complete(c *fiber.Ctx) error {
	attemptID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	completion, err := h.service.Complete(c.Context(), attemptID)
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "attempt not found")
		}
		h.logger.Error().Err(err).Uint("attempt_id", attemptID).Msg("failed to complete attempt")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to complete attempt")
	}

	return utils.SendSuccess(c, "attempt completed", completion)
}
