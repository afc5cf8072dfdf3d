package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskflow/internal/service"
)

// AnalyticsHandler serves dashboard statistics and the skill vocabulary.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	skills    *service.SkillService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, skills *service.SkillService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, skills: skills}
}

// Snapshot GET /analytics.
func (h *AnalyticsHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.analytics.Snapshot(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snap})
}

// Skills GET /skills.
func (h *AnalyticsHandler) Skills(c *fiber.Ctx) error {
	vocabulary, err := h.skills.Vocabulary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vocabulary})
}
