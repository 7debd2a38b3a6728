package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// DeviceService coordinates the device registry.
type DeviceService struct {
	devices        repository.DeviceRepository
	labs           repository.LabRepository
	reports        repository.ReportRepository
	intervalMonths int
	now            func() time.Time
}

// DeviceDependencies bundles repositories for the device service.
type DeviceDependencies struct {
	DeviceRepo     repository.DeviceRepository
	LabRepo        repository.LabRepository
	ReportRepo     repository.ReportRepository
	IntervalMonths int
	Now            func() time.Time
}

// DeviceCreateInput describes device registration payload.
type DeviceCreateInput struct {
	SerialNumber string
	Type         string
	LabNumber    string
}

// NewDeviceService constructs the service.
func NewDeviceService(deps DeviceDependencies) *DeviceService {
	svc := &DeviceService{
		devices:        deps.DeviceRepo,
		labs:           deps.LabRepo,
		reports:        deps.ReportRepo,
		intervalMonths: deps.IntervalMonths,
		now:            deps.Now,
	}
	if svc.intervalMonths <= 0 {
		svc.intervalMonths = 6
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// AddDevice registers a device, allocating the lowest unused device number
// within the lab's capacity.
func (s *DeviceService) AddDevice(ctx context.Context, input DeviceCreateInput) (*domain.Device, error) {
	serial := strings.TrimSpace(input.SerialNumber)
	deviceType := strings.TrimSpace(input.Type)
	labNumber := strings.TrimSpace(input.LabNumber)
	if serial == "" || deviceType == "" || labNumber == "" {
		return nil, apperrors.NewValidationError("serial_number, type, lab_number required", nil)
	}

	if _, err := s.devices.GetBySerial(ctx, serial); err == nil {
		return nil, apperrors.NewConflict("device already exists", map[string]any{"serial_number": serial})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	lab, err := s.labs.GetByNumber(ctx, labNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lab", map[string]any{"lab_number": labNumber})
		}
		return nil, apperrors.MapError(err)
	}

	numbers, err := s.devices.ListNumbersByLab(ctx, labNumber)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	used := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		used[n] = struct{}{}
	}
	deviceNumber := 1
	for {
		if _, taken := used[deviceNumber]; !taken {
			break
		}
		deviceNumber++
	}
	if deviceNumber > lab.Capacity {
		return nil, apperrors.NewConflict("no capacity left in lab", map[string]any{
			"lab_number": labNumber,
			"capacity":   lab.Capacity,
		})
	}

	today := dateOnly(s.now())
	device := &domain.Device{
		SerialNumber:     serial,
		DeviceNumber:     deviceNumber,
		LabNumber:        labNumber,
		Type:             deviceType,
		Status:           domain.DeviceStatusWorking,
		ArrivalDate:      today,
		NextPeriodicDate: today.AddDate(0, s.intervalMonths, 0),
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, apperrors.MapError(err)
	}
	return device, nil
}

// DeleteDevice removes a device by serial number.
func (s *DeviceService) DeleteDevice(ctx context.Context, serial string) error {
	if strings.TrimSpace(serial) == "" {
		return apperrors.NewValidationError("serial_number required", nil)
	}
	if err := s.devices.DeleteBySerial(ctx, serial); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("device", map[string]any{"serial_number": serial})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// SearchDevice returns a device and every report ever filed against it.
func (s *DeviceService) SearchDevice(ctx context.Context, serial string) (*domain.DeviceReports, error) {
	device, err := s.devices.GetBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("device", map[string]any{"serial_number": serial})
		}
		return nil, apperrors.MapError(err)
	}
	reports, err := s.reports.ListBySerial(ctx, serial)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.DeviceReports{Device: *device, Reports: reports}, nil
}

// ListDevices returns all devices ordered by lab and device number.
func (s *DeviceService) ListDevices(ctx context.Context) ([]domain.Device, error) {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return devices, nil
}

// ListLabDevices returns the devices in one lab.
func (s *DeviceService) ListLabDevices(ctx context.Context, labNumber string) ([]domain.Device, error) {
	devices, err := s.devices.ListByLab(ctx, labNumber)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return devices, nil
}

// ListLabs returns all labs.
func (s *DeviceService) ListLabs(ctx context.Context) ([]domain.Lab, error) {
	labs, err := s.labs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return labs, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
