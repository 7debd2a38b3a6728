package service

import (
	"context"
	"math"
	"testing"

	"github.com/campus-it/lab-support/internal/domain"
)

func seedDevices(count int, lab string, status domain.DeviceStatus, startAt int) []domain.Device {
	devices := make([]domain.Device, 0, count)
	for i := 0; i < count; i++ {
		devices = append(devices, domain.Device{
			SerialNumber: lab + "-" + string(rune('A'+startAt+i)),
			DeviceNumber: startAt + i + 1,
			LabNumber:    lab,
			Status:       status,
		})
	}
	return devices
}

func TestLabsWithDeviceCountsSumsBothStatuses(t *testing.T) {
	devices := &fakeDeviceRepo{}
	devices.devices = append(devices.devices, seedDevices(20, "B-101", domain.DeviceStatusWorking, 0)...)
	devices.devices = append(devices.devices, seedDevices(5, "B-101", domain.DeviceStatusReported, 20)...)

	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       devices,
		LabRepo:          &fakeLabRepo{labs: []domain.Lab{{Number: "B-101", Capacity: 30}}},
		ReportRepo:       &fakeReportRepo{},
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	counts, err := svc.LabsWithDeviceCounts(context.Background())
	if err != nil {
		t.Fatalf("LabsWithDeviceCounts: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("expected 1 lab, got %d", len(counts))
	}
	got := counts[0]
	if got.WorkingCount != 20 || got.ReportedCount != 5 {
		t.Fatalf("counts = %d working / %d reported", got.WorkingCount, got.ReportedCount)
	}
	if got.TotalDevices != 25 {
		t.Fatalf("total = %d, want 25", got.TotalDevices)
	}
}

func TestLabsWithDeviceCountsNoLabs(t *testing.T) {
	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       &fakeDeviceRepo{},
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       &fakeReportRepo{},
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	_, err := svc.LabsWithDeviceCounts(context.Background())
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestReportStatisticsPercentages(t *testing.T) {
	reports := &fakeReportRepo{}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = reports.Create(ctx, &domain.Report{SerialNumber: "SN-1", ProblemType: "Screen"})
	}
	_ = reports.Create(ctx, &domain.Report{SerialNumber: "SN-2", ProblemType: "Keyboard"})

	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       &fakeDeviceRepo{},
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       reports,
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	stats, err := svc.ReportStatistics(ctx)
	if err != nil {
		t.Fatalf("ReportStatistics: %v", err)
	}
	if stats.TotalCount != 4 {
		t.Fatalf("total = %d, want 4", stats.TotalCount)
	}
	byType := map[string]float64{}
	for _, d := range stats.Details {
		byType[d.ProblemType] = d.Percentage
	}
	if math.Abs(byType["Screen"]-75) > 1e-9 {
		t.Fatalf("Screen pct = %v, want 75", byType["Screen"])
	}
	if math.Abs(byType["Keyboard"]-25) > 1e-9 {
		t.Fatalf("Keyboard pct = %v, want 25", byType["Keyboard"])
	}
}

func TestReportStatisticsEmptyIsNotFound(t *testing.T) {
	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       &fakeDeviceRepo{},
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       &fakeReportRepo{},
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	_, err := svc.ReportStatistics(context.Background())
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestDeviceReportStatisticsScopedToSerial(t *testing.T) {
	reports := &fakeReportRepo{}
	ctx := context.Background()
	_ = reports.Create(ctx, &domain.Report{SerialNumber: "SN-1", ProblemType: "Screen"})
	_ = reports.Create(ctx, &domain.Report{SerialNumber: "SN-1", ProblemType: "Power"})
	_ = reports.Create(ctx, &domain.Report{SerialNumber: "SN-2", ProblemType: "Screen"})

	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       &fakeDeviceRepo{},
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       reports,
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	stats, err := svc.DeviceReportStatistics(ctx, "SN-1")
	if err != nil {
		t.Fatalf("DeviceReportStatistics: %v", err)
	}
	if stats.TotalCount != 2 || len(stats.Details) != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	_, err = svc.DeviceReportStatistics(ctx, "SN-404")
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestTeamProgressCountsOpenReportNotifications(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		{ID: "tech-1", FirstName: "Lina", Role: domain.RoleTechnicalMember},
		{ID: "tech-2", FirstName: "Sami", Role: domain.RoleTechnicalMember},
		{ID: "sup-1", Role: domain.RoleSupervisor},
	}}
	notifications := &fakeNotificationRepo{}
	ctx := context.Background()
	_ = notifications.Create(ctx, &domain.Notification{ReportID: 1, UserID: "tech-1", Type: domain.NotificationTypeIssue})
	_ = notifications.Create(ctx, &domain.Notification{ReportID: 2, UserID: "tech-1", Type: domain.NotificationTypeMaintenance})
	// Request notifications do not count toward report workload.
	_ = notifications.Create(ctx, &domain.Notification{ReportID: 3, UserID: "tech-2", Type: domain.NotificationTypeRequest})

	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       &fakeDeviceRepo{},
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       &fakeReportRepo{},
		UserRepo:         users,
		NotificationRepo: notifications,
	})

	progress, err := svc.TeamProgress(ctx)
	if err != nil {
		t.Fatalf("TeamProgress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("expected 2 members, got %d", len(progress))
	}
	byID := map[string]int{}
	for _, p := range progress {
		byID[p.UserID] = p.NumberOfReports
	}
	if byID["tech-1"] != 2 || byID["tech-2"] != 0 {
		t.Fatalf("workloads = %v", byID)
	}
}

func TestDevicesStatistics(t *testing.T) {
	devices := &fakeDeviceRepo{}
	devices.devices = append(devices.devices, seedDevices(3, "B-101", domain.DeviceStatusWorking, 0)...)
	devices.devices = append(devices.devices, seedDevices(2, "B-102", domain.DeviceStatusReported, 0)...)

	svc := NewStatsService(StatsDependencies{
		DeviceRepo:       devices,
		LabRepo:          &fakeLabRepo{},
		ReportRepo:       &fakeReportRepo{},
		UserRepo:         &fakeUserRepo{},
		NotificationRepo: &fakeNotificationRepo{},
	})

	stats, err := svc.DevicesStatistics(context.Background())
	if err != nil {
		t.Fatalf("DevicesStatistics: %v", err)
	}
	if stats.TotalCount != 5 || stats.WorkingCount != 3 || stats.ReportedCount != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
