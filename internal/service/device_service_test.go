package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campus-it/lab-support/internal/domain"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
}

func newDeviceFixture(capacity int) (*DeviceService, *fakeDeviceRepo) {
	devices := &fakeDeviceRepo{}
	labs := &fakeLabRepo{labs: []domain.Lab{{Number: "B-101", Capacity: capacity, Location: "Building B"}}}
	svc := NewDeviceService(DeviceDependencies{
		DeviceRepo:     devices,
		LabRepo:        labs,
		ReportRepo:     &fakeReportRepo{},
		IntervalMonths: 6,
		Now:            fixedNow,
	})
	return svc, devices
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, domainErr.Code)
	}
}

func TestAddDeviceAllocatesLowestUnusedNumber(t *testing.T) {
	svc, repo := newDeviceFixture(10)
	ctx := context.Background()

	for _, serial := range []string{"SN-1", "SN-2", "SN-3"} {
		if _, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: serial, Type: "PC", LabNumber: "B-101"}); err != nil {
			t.Fatalf("AddDevice(%s): %v", serial, err)
		}
	}

	// Free number 2 and re-add: the hole must be filled first.
	if err := svc.DeleteDevice(ctx, "SN-2"); err != nil {
		t.Fatalf("DeleteDevice: %v", err)
	}
	device, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: "SN-4", Type: "PC", LabNumber: "B-101"})
	if err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	if device.DeviceNumber != 2 {
		t.Fatalf("expected device number 2, got %d", device.DeviceNumber)
	}

	next, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: "SN-5", Type: "PC", LabNumber: "B-101"})
	if err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	if next.DeviceNumber != 4 {
		t.Fatalf("expected device number 4, got %d", next.DeviceNumber)
	}
	if len(repo.devices) != 4 {
		t.Fatalf("expected 4 devices, got %d", len(repo.devices))
	}
}

func TestAddDeviceRejectsFullLab(t *testing.T) {
	svc, _ := newDeviceFixture(2)
	ctx := context.Background()

	for _, serial := range []string{"SN-1", "SN-2"} {
		if _, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: serial, Type: "PC", LabNumber: "B-101"}); err != nil {
			t.Fatalf("AddDevice(%s): %v", serial, err)
		}
	}

	_, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: "SN-3", Type: "PC", LabNumber: "B-101"})
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestAddDeviceRejectsDuplicateSerial(t *testing.T) {
	svc, _ := newDeviceFixture(10)
	ctx := context.Background()

	if _, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: "SN-1", Type: "PC", LabNumber: "B-101"}); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	_, err := svc.AddDevice(ctx, DeviceCreateInput{SerialNumber: "SN-1", Type: "Printer", LabNumber: "B-101"})
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestAddDeviceSetsMaintenanceSchedule(t *testing.T) {
	svc, _ := newDeviceFixture(10)

	device, err := svc.AddDevice(context.Background(), DeviceCreateInput{SerialNumber: "SN-1", Type: "PC", LabNumber: "B-101"})
	if err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	wantArrival := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !device.ArrivalDate.Equal(wantArrival) {
		t.Fatalf("arrival date = %v, want %v", device.ArrivalDate, wantArrival)
	}
	if !device.NextPeriodicDate.Equal(wantArrival.AddDate(0, 6, 0)) {
		t.Fatalf("next periodic date = %v, want %v", device.NextPeriodicDate, wantArrival.AddDate(0, 6, 0))
	}
	if device.Status != domain.DeviceStatusWorking {
		t.Fatalf("status = %s, want %s", device.Status, domain.DeviceStatusWorking)
	}
}

func TestAddDeviceUnknownLab(t *testing.T) {
	svc, _ := newDeviceFixture(10)

	_, err := svc.AddDevice(context.Background(), DeviceCreateInput{SerialNumber: "SN-1", Type: "PC", LabNumber: "Z-999"})
	assertDomainErrorCode(t, err, "NOT_FOUND")
}

func TestSearchDeviceReturnsHistory(t *testing.T) {
	devices := &fakeDeviceRepo{devices: []domain.Device{
		{SerialNumber: "SN-1", DeviceNumber: 1, LabNumber: "B-101", Status: domain.DeviceStatusWorking},
	}}
	reports := &fakeReportRepo{}
	_ = reports.Create(context.Background(), &domain.Report{SerialNumber: "SN-1", ProblemType: "Screen"})
	_ = reports.Create(context.Background(), &domain.Report{SerialNumber: "SN-2", ProblemType: "Keyboard"})

	svc := NewDeviceService(DeviceDependencies{
		DeviceRepo:     devices,
		LabRepo:        &fakeLabRepo{},
		ReportRepo:     reports,
		IntervalMonths: 6,
		Now:            fixedNow,
	})

	result, err := svc.SearchDevice(context.Background(), "SN-1")
	if err != nil {
		t.Fatalf("SearchDevice: %v", err)
	}
	if result.Device.SerialNumber != "SN-1" {
		t.Fatalf("device serial = %s", result.Device.SerialNumber)
	}
	if len(result.Reports) != 1 || result.Reports[0].ProblemType != "Screen" {
		t.Fatalf("unexpected report history: %+v", result.Reports)
	}

	_, err = svc.SearchDevice(context.Background(), "SN-404")
	assertDomainErrorCode(t, err, "NOT_FOUND")
}
