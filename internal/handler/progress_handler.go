package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/utils"
)

// ProgressHandler exposes the student progress endpoint.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler creates a new handler instance.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches the progress endpoint under a student group.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("/progress", h.getProgress)
}

func (h *ProgressHandler) getProgress(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	progress, err := h.service.GetProgress(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to load progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load progress")
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}
