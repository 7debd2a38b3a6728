package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/events"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// ReportService coordinates the report lifecycle.
type ReportService struct {
	reports       repository.ReportRepository
	devices       repository.DeviceRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	router        *supervisorRouter
	cooldown      CooldownStore
	cooldownTTL   time.Duration
	dispatcher    events.Dispatcher
	now           func() time.Time
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	ReportRepo       repository.ReportRepository
	DeviceRepo       repository.DeviceRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	Cooldown         CooldownStore
	CooldownTTL      time.Duration
	Dispatcher       events.Dispatcher
	Now              func() time.Time
}

// ReportCreateInput describes a faculty problem report.
type ReportCreateInput struct {
	SerialNumber       string
	ProblemType        string
	ProblemDescription string
	ReportedBy         string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	svc := &ReportService{
		reports:       deps.ReportRepo,
		devices:       deps.DeviceRepo,
		users:         deps.UserRepo,
		notifications: deps.NotificationRepo,
		router:        &supervisorRouter{users: deps.UserRepo, notifications: deps.NotificationRepo},
		cooldown:      deps.Cooldown,
		cooldownTTL:   deps.CooldownTTL,
		dispatcher:    deps.Dispatcher,
		now:           deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// FileReport records a device problem: the report starts PENDING assigned to
// the routing supervisor, the device flips to REPORTED and a notification is
// created for the assignee. A server-side cooldown rejects re-reports of the
// same device inside the configured window.
func (s *ReportService) FileReport(ctx context.Context, input ReportCreateInput) (*domain.Report, error) {
	serial := strings.TrimSpace(input.SerialNumber)
	if serial == "" || strings.TrimSpace(input.ProblemDescription) == "" || input.ReportedBy == "" {
		return nil, apperrors.NewValidationError("serial_number, problem_description, reported_by required", nil)
	}

	device, err := s.devices.GetBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("device", map[string]any{"serial_number": serial})
		}
		return nil, apperrors.MapError(err)
	}

	if s.cooldown != nil && s.cooldownTTL > 0 {
		active, err := s.cooldown.Active(ctx, serial)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if active {
			return nil, apperrors.NewConflict("device was reported recently", map[string]any{
				"serial_number": serial,
			})
		}
	}

	reporter, err := s.users.GetByID(ctx, input.ReportedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": input.ReportedBy})
		}
		return nil, apperrors.MapError(err)
	}

	supervisor, err := s.router.Route(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		DeviceNumber:        device.DeviceNumber,
		SerialNumber:        device.SerialNumber,
		LabNumber:           device.LabNumber,
		Type:                domain.ReportTypeIssue,
		Status:              domain.ReportStatusPending,
		ProblemType:         input.ProblemType,
		ProblemDescription:  strings.TrimSpace(input.ProblemDescription),
		ReportedBy:          reporter.ID,
		ReportedByFirstName: reporter.FirstName,
		ReportedByLastName:  reporter.LastName,
		AssignedTo:          supervisor.ID,
		AssignedToFirstName: supervisor.FirstName,
		AssignedToLastName:  supervisor.LastName,
		ReportDate:          dateOnly(s.now()),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.devices.UpdateStatus(ctx, serial, domain.DeviceStatusReported); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	notification := &domain.Notification{
		ReportID: report.ID,
		UserID:   supervisor.ID,
		Type:     domain.NotificationTypeIssue,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cooldown != nil && s.cooldownTTL > 0 {
		if err := s.cooldown.Set(ctx, serial, s.cooldownTTL); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publish(ctx, reporter.ID, events.Event{
		Type: events.EventReportFiled,
		Payload: events.ReportFiledPayload{
			ReportID:     report.ID,
			SerialNumber: report.SerialNumber,
			LabNumber:    report.LabNumber,
			ReportType:   report.Type,
			ProblemType:  report.ProblemType,
			AssignedTo:   report.AssignedTo,
		},
	})
	return report, nil
}

// MyReports lists reports filed by one user.
func (s *ReportService) MyReports(ctx context.Context, userID string) ([]domain.Report, error) {
	reports, err := s.reports.ListByReporter(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ReportsByAssignee lists the in-process reports assigned to a technical member.
func (s *ReportService) ReportsByAssignee(ctx context.Context, userID string) ([]domain.Report, error) {
	reports, err := s.reports.ListByAssigneeAndStatus(ctx, userID, domain.ReportStatusInProcess)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ListReports returns every report.
func (s *ReportService) ListReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// AssignReport moves a report to a technical member: status becomes
// IN_PROCESS and the notification follows the new assignee.
func (s *ReportService) AssignReport(ctx context.Context, actorID string, reportID int64, userID string) (*domain.Report, error) {
	member, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	assignment := repository.ReportAssignment{
		AssignedTo:          member.ID,
		AssignedToFirstName: member.FirstName,
		AssignedToLastName:  member.LastName,
		Status:              domain.ReportStatusInProcess,
	}
	if err := s.reports.Assign(ctx, reportID, assignment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": reportID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.notifications.Reassign(ctx, reportID, domain.ReportNotificationTypes, member.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.Event{
		Type:    events.EventReportAssigned,
		Payload: events.ReportAssignedPayload{ReportID: reportID, AssignedTo: member.ID},
	})
	return s.getReport(ctx, reportID)
}

// ResolveReport closes a report: action and repair date are recorded, the
// device flips back to WORKING and the notification is removed.
func (s *ReportService) ResolveReport(ctx context.Context, actorID string, reportID int64, actionTaken string) (*domain.Report, error) {
	if strings.TrimSpace(actionTaken) == "" {
		return nil, apperrors.NewValidationError("action_taken required", nil)
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	resolution := repository.ReportResolution{
		ActionTaken: strings.TrimSpace(actionTaken),
		RepairDate:  dateOnly(s.now()),
		Status:      domain.ReportStatusResolved,
	}
	if err := s.reports.Resolve(ctx, reportID, resolution); err != nil {
		return nil, apperrors.MapError(err)
	}

	// The device may have been deleted since the report was filed.
	if err := s.devices.UpdateStatus(ctx, report.SerialNumber, domain.DeviceStatusWorking); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if err := s.notifications.Delete(ctx, reportID, []domain.NotificationType{notificationTypeForReport(report.Type)}); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.Event{
		Type: events.EventReportResolved,
		Payload: events.ReportResolvedPayload{
			ReportID:     reportID,
			SerialNumber: report.SerialNumber,
			ActionTaken:  resolution.ActionTaken,
		},
	})
	return s.getReport(ctx, reportID)
}

// CheckReport records the supervisor's review of a report.
func (s *ReportService) CheckReport(ctx context.Context, reportID int64) error {
	if err := s.reports.MarkChecked(ctx, reportID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("report", map[string]any{"report_id": reportID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// MonitorReports lists reports the supervisor has not reviewed yet.
func (s *ReportService) MonitorReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.reports.ListUnchecked(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

func (s *ReportService) getReport(ctx context.Context, reportID int64) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": reportID})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

func (s *ReportService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ActorID = actorID
	_ = s.dispatcher.Publish(ctx, event)
}

func notificationTypeForReport(reportType domain.ReportType) domain.NotificationType {
	if reportType == domain.ReportTypeMaintenance {
		return domain.NotificationTypeMaintenance
	}
	return domain.NotificationTypeIssue
}
