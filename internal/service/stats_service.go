package service

import (
	"context"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// StatsService computes dashboard aggregates.
type StatsService struct {
	devices       repository.DeviceRepository
	labs          repository.LabRepository
	reports       repository.ReportRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
}

// StatsDependencies bundles repositories for the stats service.
type StatsDependencies struct {
	DeviceRepo       repository.DeviceRepository
	LabRepo          repository.LabRepository
	ReportRepo       repository.ReportRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		devices:       deps.DeviceRepo,
		labs:          deps.LabRepo,
		reports:       deps.ReportRepo,
		users:         deps.UserRepo,
		notifications: deps.NotificationRepo,
	}
}

// LabsWithDeviceCounts returns per-lab working/reported counts; the total is
// the sum of both.
func (s *StatsService) LabsWithDeviceCounts(ctx context.Context) ([]domain.LabDeviceCounts, error) {
	labs, err := s.labs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(labs) == 0 {
		return nil, apperrors.NewNotFound("labs", nil)
	}

	result := make([]domain.LabDeviceCounts, 0, len(labs))
	for _, lab := range labs {
		reported, err := s.devices.CountByLabAndStatus(ctx, lab.Number, domain.DeviceStatusReported)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		working, err := s.devices.CountByLabAndStatus(ctx, lab.Number, domain.DeviceStatusWorking)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result = append(result, domain.LabDeviceCounts{
			LabNumber:     lab.Number,
			WorkingCount:  working,
			ReportedCount: reported,
			TotalDevices:  working + reported,
		})
	}
	return result, nil
}

// TeamProgress returns the open report workload per technical member.
func (s *StatsService) TeamProgress(ctx context.Context) ([]domain.MemberProgress, error) {
	members, err := s.users.ListByRole(ctx, domain.RoleTechnicalMember)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(members) == 0 {
		return nil, apperrors.NewNotFound("technical members", nil)
	}

	result := make([]domain.MemberProgress, 0, len(members))
	for _, member := range members {
		count, err := s.notifications.CountByUserAndTypes(ctx, member.ID, domain.ReportNotificationTypes)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result = append(result, domain.MemberProgress{
			UserID:          member.ID,
			FirstName:       member.FirstName,
			LastName:        member.LastName,
			NumberOfReports: count,
		})
	}
	return result, nil
}

// ReportStatistics breaks all reports down by problem type with percentages.
// A zero total is reported as not-found before any percentage arithmetic.
func (s *StatsService) ReportStatistics(ctx context.Context) (*domain.ReportStatistics, error) {
	total, err := s.reports.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if total <= 0 {
		return nil, apperrors.NewNotFound("reports", nil)
	}

	counts, err := s.reports.CountByProblemType(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return buildReportStatistics(total, counts), nil
}

// DeviceReportStatistics is ReportStatistics scoped to one device.
func (s *StatsService) DeviceReportStatistics(ctx context.Context, serial string) (*domain.ReportStatistics, error) {
	total, err := s.reports.CountBySerial(ctx, serial)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if total <= 0 {
		return nil, apperrors.NewNotFound("device reports", map[string]any{"serial_number": serial})
	}

	counts, err := s.reports.CountByProblemTypeForSerial(ctx, serial)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return buildReportStatistics(total, counts), nil
}

// DevicesStatistics counts devices by health.
func (s *StatsService) DevicesStatistics(ctx context.Context) (*domain.DeviceStatistics, error) {
	total, err := s.devices.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if total <= 0 {
		return nil, apperrors.NewNotFound("devices", nil)
	}

	working, err := s.devices.CountByStatus(ctx, domain.DeviceStatusWorking)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	reported, err := s.devices.CountByStatus(ctx, domain.DeviceStatusReported)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &domain.DeviceStatistics{
		TotalCount:    total,
		WorkingCount:  working,
		ReportedCount: reported,
	}, nil
}

func buildReportStatistics(total int, counts []domain.ProblemTypeCount) *domain.ReportStatistics {
	details := make([]domain.ReportSummary, 0, len(counts))
	for _, entry := range counts {
		details = append(details, domain.ReportSummary{
			ProblemType: entry.ProblemType,
			Count:       entry.Count,
			Percentage:  float64(entry.Count) / float64(total) * 100,
		})
	}
	return &domain.ReportStatistics{TotalCount: total, Details: details}
}
