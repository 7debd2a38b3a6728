package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/lab-support/internal/api/dto"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/service"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// SupervisorHandler exposes the endpoints supervisors use to triage,
// assign and audit reported work.
type SupervisorHandler struct {
	reports     *service.ReportService
	requests    *service.RequestService
	maintenance *service.MaintenanceService
	stats       *service.StatsService
}

// NewSupervisorHandler constructs handler.
func NewSupervisorHandler(reports *service.ReportService, requests *service.RequestService, maintenance *service.MaintenanceService, stats *service.StatsService) *SupervisorHandler {
	return &SupervisorHandler{reports: reports, requests: requests, maintenance: maintenance, stats: stats}
}

// NewReports handles GET /api/v1/reports/new. It runs the periodic
// maintenance sweep before listing open pending reports, so the daily
// dashboard refresh is what drives maintenance report creation.
func (h *SupervisorHandler) NewReports(c *fiber.Ctx) error {
	reports, err := h.maintenance.NewReportsForSupervisor(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponses(reports)})
}

// ListReports handles GET /api/v1/reports.
func (h *SupervisorHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reports.ListReports(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponses(reports)})
}

// AssignReport handles PUT /api/v1/reports/:id/assign.
func (h *SupervisorHandler) AssignReport(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	reportID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.AssignReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return apperrors.NewValidationError("user_id is required", nil)
	}

	report, err := h.reports.AssignReport(c.Context(), principal.User.ID, reportID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// MonitorReports handles GET /api/v1/reports/unchecked. Resolved reports
// stay listed until the supervisor acknowledges them.
func (h *SupervisorHandler) MonitorReports(c *fiber.Ctx) error {
	reports, err := h.reports.MonitorReports(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponses(reports)})
}

// CheckReport handles PUT /api/v1/reports/:id/check.
func (h *SupervisorHandler) CheckReport(c *fiber.Ctx) error {
	reportID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.reports.CheckReport(c.Context(), reportID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": reportID, "checked": true}})
}

// ListRequests handles GET /api/v1/requests.
func (h *SupervisorHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := h.requests.ListRequests(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// AssignRequest handles PUT /api/v1/requests/:id/assign.
func (h *SupervisorHandler) AssignRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	requestID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.AssignServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return apperrors.NewValidationError("user_id is required", nil)
	}

	request, err := h.requests.AssignRequest(c.Context(), principal.User.ID, requestID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// TeamProgress handles GET /api/v1/stats/team-progress.
func (h *SupervisorHandler) TeamProgress(c *fiber.Ctx) error {
	progress, err := h.stats.TeamProgress(c.Context())
	if err != nil {
		return err
	}
	result := make([]dto.MemberProgressResponse, 0, len(progress))
	for _, member := range progress {
		result = append(result, dto.MemberProgressResponse{
			UserID:          member.UserID,
			FirstName:       member.FirstName,
			LastName:        member.LastName,
			NumberOfReports: member.NumberOfReports,
		})
	}
	return c.JSON(fiber.Map{"data": result})
}

// ReportStatistics handles GET /api/v1/stats/reports.
func (h *SupervisorHandler) ReportStatistics(c *fiber.Ctx) error {
	stats, err := h.stats.ReportStatistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statisticsResponse(stats)})
}

// DeviceReportStatistics handles GET /api/v1/stats/devices/:serialNumber/reports.
func (h *SupervisorHandler) DeviceReportStatistics(c *fiber.Ctx) error {
	serial := strings.TrimSpace(c.Params("serialNumber"))
	if serial == "" {
		return apperrors.NewValidationError("serial number is required", nil)
	}
	stats, err := h.stats.DeviceReportStatistics(c.Context(), serial)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statisticsResponse(stats)})
}

// DevicesStatistics handles GET /api/v1/stats/devices.
func (h *SupervisorHandler) DevicesStatistics(c *fiber.Ctx) error {
	stats, err := h.stats.DevicesStatistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeviceStatisticsResponse{
		TotalCount:    stats.TotalCount,
		WorkingCount:  stats.WorkingCount,
		ReportedCount: stats.ReportedCount,
	}})
}
