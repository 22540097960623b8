package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/utils"
)

// BadgeHandler exposes earned badges and the explicit badge check.
type BadgeHandler struct {
	service service.BadgeService
	logger  zerolog.Logger
}

// NewBadgeHandler creates a new handler instance.
func NewBadgeHandler(service service.BadgeService, logger zerolog.Logger) *BadgeHandler {
	return &BadgeHandler{
		service: service,
		logger:  logger.With().Str("component", "badge_handler").Logger(),
	}
}

// Register attaches the badge endpoints under a student group.
func (h *BadgeHandler) Register(router fiber.Router, checkLimiter fiber.Handler) {
	router.Get("/badges", h.listEarned)
	if checkLimiter != nil {
		router.Post("/badges/check", checkLimiter, h.check)
	} else {
		router.Post("/badges/check", h.check)
	}
}

func (h *BadgeHandler) listEarned(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	earned, err := h.service.ListEarned(c.Context(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to list earned badges")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list badges")
	}

	return utils.SendSuccess(c, "badges retrieved", earned)
}

func (h *BadgeHandler) check(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	newBadges, err := h.service.Check(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("badge check failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "badge check failed")
	}

	return utils.SendSuccess(c, "badge check completed", dto.BadgeCheckResponse{NewBadges: newBadges})
}
