package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/lab-support/internal/api/dto"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/service"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// TechnicalHandler exposes the endpoints technical members use to manage
// devices and work their assigned reports and requests.
type TechnicalHandler struct {
	devices       *service.DeviceService
	reports       *service.ReportService
	requests      *service.RequestService
	notifications *service.NotificationService
}

// NewTechnicalHandler constructs handler.
func NewTechnicalHandler(devices *service.DeviceService, reports *service.ReportService, requests *service.RequestService, notifications *service.NotificationService) *TechnicalHandler {
	return &TechnicalHandler{devices: devices, reports: reports, requests: requests, notifications: notifications}
}

// AddDevice handles POST /api/v1/devices.
func (h *TechnicalHandler) AddDevice(c *fiber.Ctx) error {
	var req dto.AddDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	device, err := h.devices.AddDevice(c.Context(), service.DeviceCreateInput{
		SerialNumber: req.SerialNumber,
		Type:         req.Type,
		LabNumber:    req.LabNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": deviceResponse(device)})
}

// DeleteDevice handles DELETE /api/v1/devices/:serialNumber.
func (h *TechnicalHandler) DeleteDevice(c *fiber.Ctx) error {
	serial := strings.TrimSpace(c.Params("serialNumber"))
	if serial == "" {
		return apperrors.NewValidationError("serial number is required", nil)
	}
	if err := h.devices.DeleteDevice(c.Context(), serial); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"serial_number": serial, "deleted": true}})
}

// ListDevices handles GET /api/v1/devices.
func (h *TechnicalHandler) ListDevices(c *fiber.Ctx) error {
	devices, err := h.devices.ListDevices(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deviceResponses(devices)})
}

// SearchDevice handles GET /api/v1/devices/search?serial_number=...
// and returns the device together with its report history.
func (h *TechnicalHandler) SearchDevice(c *fiber.Ctx) error {
	serial := strings.TrimSpace(c.Query("serial_number"))
	if serial == "" {
		return apperrors.NewValidationError("serial_number query parameter is required", nil)
	}

	result, err := h.devices.SearchDevice(c.Context(), serial)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeviceReportsResponse{
		Device:  deviceResponse(&result.Device),
		Reports: reportResponses(result.Reports),
	}})
}

// AssignedReports handles GET /api/v1/reports/assigned.
func (h *TechnicalHandler) AssignedReports(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reports, err := h.reports.ReportsByAssignee(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponses(reports)})
}

// ResolveReport handles PUT /api/v1/reports/:id/resolve.
func (h *TechnicalHandler) ResolveReport(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	reportID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.ResolveReport(c.Context(), principal.User.ID, reportID, req.ActionTaken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// AssignedRequests handles GET /api/v1/requests/assigned.
func (h *TechnicalHandler) AssignedRequests(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.requests.NewRequestsByAssignee(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// HandleRequest handles PUT /api/v1/requests/:id/handle.
func (h *TechnicalHandler) HandleRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	requestID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.HandleServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.requests.HandleRequest(c.Context(), principal.User.ID, requestID, req.Reply, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Notifications handles GET /api/v1/notifications.
func (h *TechnicalHandler) Notifications(c *fiber.Ctx) error {
	notifications, err := h.notifications.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notificationResponses(notifications)})
}

// ReportNotificationCount handles GET /api/v1/notifications/reports/count.
func (h *TechnicalHandler) ReportNotificationCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	count, err := h.notifications.ReportCountForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// RequestNotificationCount handles GET /api/v1/notifications/requests/count.
func (h *TechnicalHandler) RequestNotificationCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	count, err := h.notifications.RequestCountForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
