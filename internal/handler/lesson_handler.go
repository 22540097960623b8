package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/utils"
)

// LessonHandler exposes the lesson catalog endpoints.
type LessonHandler struct {
	service service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler creates a new handler instance.
func NewLessonHandler(service service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches the lesson endpoints.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
}

func (h *LessonHandler) list(c *fiber.Ctx) error {
	lessons, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list lessons")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list lessons")
	}

	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *LessonHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	lesson, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		h.logger.Error().Err(err).Uint("lesson_id", id).Msg("failed to load lesson")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load lesson")
	}

	return utils.SendSuccess(c, "lesson retrieved", lesson)
}
