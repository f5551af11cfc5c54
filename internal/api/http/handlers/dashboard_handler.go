package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-analytics/internal/analytics"
	"github.com/spec-kit/helpdesk-analytics/internal/service"
	apperrors "github.com/spec-kit/helpdesk-analytics/pkg/util/errorutil"
)

// DashboardHandler serves live metrics, trends and distributions.
type DashboardHandler struct {
	service           *service.DashboardService
	defaultTrendCount int
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService, defaultTrendCount int) *DashboardHandler {
	if defaultTrendCount <= 0 {
		defaultTrendCount = 12
	}
	return &DashboardHandler{service: dashboardService, defaultTrendCount: defaultTrendCount}
}

// Metrics GET /api/dashboard/metrics.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	snapshot, err := h.service.Metrics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}

// Trends GET /api/dashboard/trends.
func (h *DashboardHandler) Trends(c *fiber.Ctx) error {
	granularity := analytics.Granularity(c.Query("granularity", string(analytics.GranularityMonth)))
	if !granularity.Valid() {
		return apperrors.NewValidationError("granularity must be week or month", map[string]any{
			"granularity": string(granularity),
		})
	}

	count := h.defaultTrendCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("count must be a positive integer", map[string]any{"count": raw})
		}
		count = parsed
	}

	trends, err := h.service.Trends(c.UserContext(), granularity, count)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": trends})
}

// Categories GET /api/dashboard/categories.
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	distribution, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": distribution})
}
