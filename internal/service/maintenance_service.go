package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/events"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// MaintenanceService generates periodic-maintenance reports for overdue
// devices. The sweep is idempotent within a day: a single-flight lock keeps
// concurrent callers out, and a per-device open-maintenance check keeps a
// re-run from double-inserting after the lock expires.
type MaintenanceService struct {
	devices        repository.DeviceRepository
	reports        repository.ReportRepository
	notifications  repository.NotificationRepository
	router         *supervisorRouter
	lock           SweepLock
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	intervalMonths int
	now            func() time.Time
}

// MaintenanceDependencies bundles collaborators for the maintenance service.
type MaintenanceDependencies struct {
	DeviceRepo       repository.DeviceRepository
	ReportRepo       repository.ReportRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	Lock             SweepLock
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	IntervalMonths   int
	Now              func() time.Time
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(deps MaintenanceDependencies) *MaintenanceService {
	svc := &MaintenanceService{
		devices:        deps.DeviceRepo,
		reports:        deps.ReportRepo,
		notifications:  deps.NotificationRepo,
		router:         &supervisorRouter{users: deps.UserRepo, notifications: deps.NotificationRepo},
		lock:           deps.Lock,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		intervalMonths: deps.IntervalMonths,
		now:            deps.Now,
	}
	if svc.intervalMonths <= 0 {
		svc.intervalMonths = 6
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// RunSweep scans devices whose next periodic date has passed and files a
// maintenance report for each, assigned to the routing supervisor. It
// returns the number of reports created; zero when the day lock was already
// taken or nothing was due.
func (s *MaintenanceService) RunSweep(ctx context.Context) (int, error) {
	today := dateOnly(s.now())
	day := today.Format("2006-01-02")

	acquired, err := s.lock.Acquire(ctx, day)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if !acquired {
		s.logger.Debug("maintenance sweep already ran", zap.String("day", day))
		return 0, nil
	}

	created, err := s.sweep(ctx, today)
	if err != nil {
		// Release so a retry within the same day can finish the scan; the
		// per-device open-maintenance guard prevents duplicates.
		if relErr := s.lock.Release(ctx, day); relErr != nil {
			s.logger.Warn("release sweep lock", zap.Error(relErr))
		}
		return created, err
	}

	if created > 0 {
		s.logger.Info("maintenance sweep complete", zap.Int("reports_created", created))
	}
	return created, nil
}

func (s *MaintenanceService) sweep(ctx context.Context, today time.Time) (int, error) {
	due, err := s.devices.ListDueMaintenance(ctx, today)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	supervisor, err := s.router.Route(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range due {
		device := &due[i]

		open, err := s.reports.HasOpenMaintenance(ctx, device.SerialNumber)
		if err != nil {
			return created, apperrors.MapError(err)
		}
		if open {
			continue
		}

		nextDue := today.AddDate(0, s.intervalMonths, 0)
		if err := s.devices.AdvanceMaintenance(ctx, device.SerialNumber, nextDue, domain.DeviceStatusReported); err != nil {
			return created, apperrors.MapError(err)
		}

		report := &domain.Report{
			DeviceNumber:        device.DeviceNumber,
			SerialNumber:        device.SerialNumber,
			LabNumber:           device.LabNumber,
			Type:                domain.ReportTypeMaintenance,
			Status:              domain.ReportStatusPending,
			ProblemType:         "Periodic maintenance",
			ProblemDescription:  "The device needs a periodic maintenance",
			ReportedBy:          domain.SystemReporterID,
			ReportedByFirstName: "Lab Support",
			ReportedByLastName:  "System",
			AssignedTo:          supervisor.ID,
			AssignedToFirstName: supervisor.FirstName,
			AssignedToLastName:  supervisor.LastName,
			ReportDate:          today,
		}
		if err := s.reports.Create(ctx, report); err != nil {
			return created, apperrors.MapError(err)
		}

		notification := &domain.Notification{
			ReportID: report.ID,
			UserID:   supervisor.ID,
			Type:     domain.NotificationTypeMaintenance,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return created, apperrors.MapError(err)
		}

		created++
		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				Type:    events.EventMaintenanceDue,
				ActorID: domain.SystemReporterID,
				Payload: events.MaintenanceDuePayload{
					ReportID:     report.ID,
					SerialNumber: device.SerialNumber,
					LabNumber:    device.LabNumber,
					NextDue:      nextDue,
				},
			})
		}
	}
	return created, nil
}

// PendingReports lists all reports still waiting for assignment.
func (s *MaintenanceService) PendingReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.reports.ListByStatus(ctx, domain.ReportStatusPending)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// NewReportsForSupervisor runs the sweep and returns the pending reports.
func (s *MaintenanceService) NewReportsForSupervisor(ctx context.Context) ([]domain.Report, error) {
	if _, err := s.RunSweep(ctx); err != nil {
		return nil, err
	}
	return s.PendingReports(ctx)
}
