package service

import (
	"context"
	"testing"
	"time"

	"github.com/campus-it/lab-support/internal/domain"
)

type reportFixture struct {
	svc           *ReportService
	devices       *fakeDeviceRepo
	reports       *fakeReportRepo
	notifications *fakeNotificationRepo
	cooldown      *fakeCooldown
}

func newReportFixture(t *testing.T, cooldownTTL time.Duration) *reportFixture {
	t.Helper()
	devices := &fakeDeviceRepo{devices: []domain.Device{
		{SerialNumber: "SN-1", DeviceNumber: 1, LabNumber: "B-101", Type: "PC", Status: domain.DeviceStatusWorking},
	}}
	users := &fakeUserRepo{users: []domain.User{
		{ID: "fac-1", FirstName: "Aisha", LastName: "Hassan", Role: domain.RoleFacultyMember},
		{ID: "sup-1", FirstName: "Omar", LastName: "Khalid", Role: domain.RoleSupervisor},
		{ID: "tech-1", FirstName: "Lina", LastName: "Saad", Role: domain.RoleTechnicalMember},
	}}
	reports := &fakeReportRepo{}
	notifications := &fakeNotificationRepo{}
	cooldown := newFakeCooldown()

	var store CooldownStore
	if cooldownTTL > 0 {
		store = cooldown
	}
	svc := NewReportService(ReportDependencies{
		ReportRepo:       reports,
		DeviceRepo:       devices,
		UserRepo:         users,
		NotificationRepo: notifications,
		Cooldown:         store,
		CooldownTTL:      cooldownTTL,
		Now:              fixedNow,
	})
	return &reportFixture{svc: svc, devices: devices, reports: reports, notifications: notifications, cooldown: cooldown}
}

func TestFileReportCreatesPendingReportAndNotification(t *testing.T) {
	f := newReportFixture(t, 72*time.Hour)
	ctx := context.Background()

	report, err := f.svc.FileReport(ctx, ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	})
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}

	if report.Status != domain.ReportStatusPending {
		t.Fatalf("status = %s, want %s", report.Status, domain.ReportStatusPending)
	}
	if report.Type != domain.ReportTypeIssue {
		t.Fatalf("type = %s, want %s", report.Type, domain.ReportTypeIssue)
	}
	if report.AssignedTo != "sup-1" || report.AssignedToFirstName != "Omar" {
		t.Fatalf("expected assignment to supervisor, got %s", report.AssignedTo)
	}
	if report.ReportedByFirstName != "Aisha" || report.ReportedByLastName != "Hassan" {
		t.Fatalf("reporter names not snapshotted: %+v", report)
	}

	device, _ := f.devices.GetBySerial(ctx, "SN-1")
	if device.Status != domain.DeviceStatusReported {
		t.Fatalf("device status = %s, want %s", device.Status, domain.DeviceStatusReported)
	}

	if len(f.notifications.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifications.notifications))
	}
	n := f.notifications.notifications[0]
	if n.UserID != "sup-1" || n.Type != domain.NotificationTypeIssue || n.ReportID != report.ID {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestFileReportRejectsDuringCooldown(t *testing.T) {
	f := newReportFixture(t, 72*time.Hour)
	ctx := context.Background()

	input := ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	}
	if _, err := f.svc.FileReport(ctx, input); err != nil {
		t.Fatalf("FileReport: %v", err)
	}

	_, err := f.svc.FileReport(ctx, input)
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestFileReportCooldownDisabled(t *testing.T) {
	f := newReportFixture(t, 0)
	ctx := context.Background()

	input := ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	}
	for i := 0; i < 2; i++ {
		if _, err := f.svc.FileReport(ctx, input); err != nil {
			t.Fatalf("FileReport #%d: %v", i+1, err)
		}
	}
	if len(f.reports.reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(f.reports.reports))
	}
}

func TestFileReportUnknownDevice(t *testing.T) {
	f := newReportFixture(t, 72*time.Hour)

	_, err := f.svc.FileReport(context.Background(), ReportCreateInput{
		SerialNumber:       "SN-404",
		ProblemDescription: "broken",
		ReportedBy:         "fac-1",
	})
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestAssignReportMovesNotificationToMember(t *testing.T) {
	f := newReportFixture(t, 0)
	ctx := context.Background()

	filed, err := f.svc.FileReport(ctx, ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	})
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}

	assigned, err := f.svc.AssignReport(ctx, "sup-1", filed.ID, "tech-1")
	if err != nil {
		t.Fatalf("AssignReport: %v", err)
	}
	if assigned.Status != domain.ReportStatusInProcess {
		t.Fatalf("status = %s, want %s", assigned.Status, domain.ReportStatusInProcess)
	}
	if assigned.AssignedTo != "tech-1" || assigned.AssignedToFirstName != "Lina" {
		t.Fatalf("unexpected assignee: %+v", assigned)
	}
	if f.notifications.notifications[0].UserID != "tech-1" {
		t.Fatalf("notification did not follow assignee: %+v", f.notifications.notifications[0])
	}

	mine, err := f.svc.ReportsByAssignee(ctx, "tech-1")
	if err != nil {
		t.Fatalf("ReportsByAssignee: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != filed.ID {
		t.Fatalf("assignee work queue wrong: %+v", mine)
	}
}

func TestResolveReportRestoresDeviceAndClearsNotification(t *testing.T) {
	f := newReportFixture(t, 0)
	ctx := context.Background()

	filed, err := f.svc.FileReport(ctx, ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	})
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}
	if _, err := f.svc.AssignReport(ctx, "sup-1", filed.ID, "tech-1"); err != nil {
		t.Fatalf("AssignReport: %v", err)
	}

	resolved, err := f.svc.ResolveReport(ctx, "tech-1", filed.ID, "Replaced display cable")
	if err != nil {
		t.Fatalf("ResolveReport: %v", err)
	}
	if resolved.Status != domain.ReportStatusResolved {
		t.Fatalf("status = %s, want %s", resolved.Status, domain.ReportStatusResolved)
	}
	if resolved.ActionTaken == nil || *resolved.ActionTaken != "Replaced display cable" {
		t.Fatalf("action taken = %v", resolved.ActionTaken)
	}
	if resolved.RepairDate == nil {
		t.Fatal("repair date not recorded")
	}

	device, _ := f.devices.GetBySerial(ctx, "SN-1")
	if device.Status != domain.DeviceStatusWorking {
		t.Fatalf("device status = %s, want %s", device.Status, domain.DeviceStatusWorking)
	}
	if len(f.notifications.notifications) != 0 {
		t.Fatalf("expected notifications cleared, got %d", len(f.notifications.notifications))
	}
}

func TestResolveReportRequiresAction(t *testing.T) {
	f := newReportFixture(t, 0)

	_, err := f.svc.ResolveReport(context.Background(), "tech-1", 1, "  ")
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestMonitorReportsUntilChecked(t *testing.T) {
	f := newReportFixture(t, 0)
	ctx := context.Background()

	filed, err := f.svc.FileReport(ctx, ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemType:        "Screen",
		ProblemDescription: "No display output",
		ReportedBy:         "fac-1",
	})
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}

	unchecked, err := f.svc.MonitorReports(ctx)
	if err != nil {
		t.Fatalf("MonitorReports: %v", err)
	}
	if len(unchecked) != 1 {
		t.Fatalf("expected 1 unchecked report, got %d", len(unchecked))
	}

	if err := f.svc.CheckReport(ctx, filed.ID); err != nil {
		t.Fatalf("CheckReport: %v", err)
	}
	unchecked, err = f.svc.MonitorReports(ctx)
	if err != nil {
		t.Fatalf("MonitorReports: %v", err)
	}
	if len(unchecked) != 0 {
		t.Fatalf("expected no unchecked reports, got %d", len(unchecked))
	}
}

func TestFileReportRoutesToLeastLoadedSupervisor(t *testing.T) {
	devices := &fakeDeviceRepo{devices: []domain.Device{
		{SerialNumber: "SN-1", DeviceNumber: 1, LabNumber: "B-101", Status: domain.DeviceStatusWorking},
	}}
	users := &fakeUserRepo{users: []domain.User{
		{ID: "fac-1", Role: domain.RoleFacultyMember},
		{ID: "sup-1", Role: domain.RoleSupervisor},
		{ID: "sup-2", Role: domain.RoleSupervisor},
	}}
	notifications := &fakeNotificationRepo{}
	// sup-1 already carries open work.
	_ = notifications.Create(context.Background(), &domain.Notification{ReportID: 99, UserID: "sup-1", Type: domain.NotificationTypeIssue})

	svc := NewReportService(ReportDependencies{
		ReportRepo:       &fakeReportRepo{},
		DeviceRepo:       devices,
		UserRepo:         users,
		NotificationRepo: notifications,
		Now:              fixedNow,
	})

	report, err := svc.FileReport(context.Background(), ReportCreateInput{
		SerialNumber:       "SN-1",
		ProblemDescription: "broken",
		ReportedBy:         "fac-1",
	})
	if err != nil {
		t.Fatalf("FileReport: %v", err)
	}
	if report.AssignedTo != "sup-2" {
		t.Fatalf("expected routing to sup-2, got %s", report.AssignedTo)
	}
}
