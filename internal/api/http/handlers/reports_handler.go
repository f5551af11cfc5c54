package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-analytics/internal/api/dto"
	"github.com/spec-kit/helpdesk-analytics/internal/auth"
	"github.com/spec-kit/helpdesk-analytics/internal/service"
	apperrors "github.com/spec-kit/helpdesk-analytics/pkg/util/errorutil"
)

// ReportsHandler serves the four report kinds and the download history.
type ReportsHandler struct {
	reports *service.ReportService
	ledger  *service.LedgerService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService, ledgerService *service.LedgerService) *ReportsHandler {
	return &ReportsHandler{reports: reportService, ledger: ledgerService}
}

// MonthlySummary GET /api/reports/monthly-summary.
func (h *ReportsHandler) MonthlySummary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return apperrors.NewValidationError("year must be an integer", map[string]any{"year": c.Query("year")})
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return apperrors.NewValidationError("month must be an integer", map[string]any{"month": c.Query("month")})
	}

	doc, err := h.reports.MonthlyTicketSummary(c.UserContext(), principal.UserID, year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(doc)})
}

// CustomerActivity GET /api/reports/customer-activity.
func (h *ReportsHandler) CustomerActivity(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	doc, err := h.reports.CustomerActivity(c.UserContext(), principal.UserID, c.Query("customer_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(doc)})
}

// SLAPerformance GET /api/reports/sla-performance.
func (h *ReportsHandler) SLAPerformance(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	doc, err := h.reports.SLAPerformance(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(doc)})
}

// Revenue GET /api/reports/revenue.
func (h *ReportsHandler) Revenue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		return apperrors.NewValidationError("start must be a YYYY-MM-DD date", map[string]any{"start": c.Query("start")})
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		return apperrors.NewValidationError("end must be a YYYY-MM-DD date", map[string]any{"end": c.Query("end")})
	}
	// Make the end bound inclusive for the whole day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	doc, err := h.reports.RevenueAnalysis(c.UserContext(), principal.UserID, start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(doc)})
}

// Downloads GET /api/reports/downloads.
func (h *ReportsHandler) Downloads(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("limit must be a positive integer", map[string]any{"limit": raw})
		}
		limit = parsed
	}

	records, err := h.ledger.Recent(c.UserContext(), principal.UserID, limit)
	if err != nil {
		return err
	}
	items := make([]dto.DownloadEntry, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewDownloadEntry(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseDateParam(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
