package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/lab-support/internal/api/dto"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/service"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// FacultyHandler exposes the endpoints faculty members use to browse labs
// and report broken devices.
type FacultyHandler struct {
	devices  *service.DeviceService
	reports  *service.ReportService
	requests *service.RequestService
	stats    *service.StatsService
}

// NewFacultyHandler constructs handler.
func NewFacultyHandler(devices *service.DeviceService, reports *service.ReportService, requests *service.RequestService, stats *service.StatsService) *FacultyHandler {
	return &FacultyHandler{devices: devices, reports: reports, requests: requests, stats: stats}
}

// GetLabs handles GET /api/v1/labs.
func (h *FacultyHandler) GetLabs(c *fiber.Ctx) error {
	labs, err := h.devices.ListLabs(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": labResponses(labs)})
}

// GetLabDevices handles GET /api/v1/labs/:labNumber/devices.
func (h *FacultyHandler) GetLabDevices(c *fiber.Ctx) error {
	labNumber := strings.TrimSpace(c.Params("labNumber"))
	if labNumber == "" {
		return apperrors.NewValidationError("lab number is required", nil)
	}
	devices, err := h.devices.ListLabDevices(c.Context(), labNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deviceResponses(devices)})
}

// GetLabsOverview handles GET /api/v1/labs/overview.
func (h *FacultyHandler) GetLabsOverview(c *fiber.Ctx) error {
	counts, err := h.stats.LabsWithDeviceCounts(c.Context())
	if err != nil {
		return err
	}
	result := make([]dto.LabDeviceCountsResponse, 0, len(counts))
	for _, entry := range counts {
		result = append(result, dto.LabDeviceCountsResponse{
			LabNumber:     entry.LabNumber,
			WorkingCount:  entry.WorkingCount,
			ReportedCount: entry.ReportedCount,
			TotalDevices:  entry.TotalDevices,
		})
	}
	return c.JSON(fiber.Map{"data": result})
}

// FileReport handles POST /api/v1/reports.
func (h *FacultyHandler) FileReport(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.FileReport(c.Context(), service.ReportCreateInput{
		SerialNumber:       req.SerialNumber,
		ProblemType:        req.ProblemType,
		ProblemDescription: req.ProblemDescription,
		ReportedBy:         principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reportResponse(report)})
}

// MyReports handles GET /api/v1/reports/mine.
func (h *FacultyHandler) MyReports(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reports, err := h.reports.MyReports(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponses(reports)})
}

// CreateRequest handles POST /api/v1/requests.
func (h *FacultyHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.requests.CreateRequest(c.Context(), service.RequestCreateInput{
		Request:     req.Request,
		ServiceType: req.ServiceType,
		RequestedBy: principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// MyRequests handles GET /api/v1/requests/mine.
func (h *FacultyHandler) MyRequests(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.requests.MyRequests(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}
