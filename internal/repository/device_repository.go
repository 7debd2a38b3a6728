package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/lab-support/internal/domain"
)

// DeviceRepository encapsulates device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	DeleteBySerial(ctx context.Context, serial string) error
	GetBySerial(ctx context.Context, serial string) (*domain.Device, error)
	List(ctx context.Context) ([]domain.Device, error)
	ListByLab(ctx context.Context, labNumber string) ([]domain.Device, error)
	ListNumbersByLab(ctx context.Context, labNumber string) ([]int, error)
	ListDueMaintenance(ctx context.Context, asOf time.Time) ([]domain.Device, error)
	UpdateStatus(ctx context.Context, serial string, status domain.DeviceStatus) error
	AdvanceMaintenance(ctx context.Context, serial string, nextDate time.Time, status domain.DeviceStatus) error
	CountByLabAndStatus(ctx context.Context, labNumber string, status domain.DeviceStatus) (int, error)
	CountByStatus(ctx context.Context, status domain.DeviceStatus) (int, error)
	Count(ctx context.Context) (int, error)
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository returns a Postgres-backed implementation.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

const deviceColumns = `serial_number, device_number, lab_number, type, status, arrival_date, next_periodic_date`

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	const query = `
        INSERT INTO devices (serial_number, device_number, lab_number, type, status, arrival_date, next_periodic_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		device.SerialNumber,
		device.DeviceNumber,
		device.LabNumber,
		device.Type,
		device.Status,
		device.ArrivalDate,
		device.NextPeriodicDate,
	)
	return err
}

func (r *deviceRepository) DeleteBySerial(ctx context.Context, serial string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM devices WHERE serial_number=$1`, serial)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) GetBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE serial_number=$1`
	var device domain.Device
	if err := r.pool.QueryRow(ctx, query, serial).Scan(
		&device.SerialNumber,
		&device.DeviceNumber,
		&device.LabNumber,
		&device.Type,
		&device.Status,
		&device.ArrivalDate,
		&device.NextPeriodicDate,
	); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) List(ctx context.Context) ([]domain.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY lab_number, device_number`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDevices(rows)
}

func (r *deviceRepository) ListByLab(ctx context.Context, labNumber string) ([]domain.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE lab_number=$1 ORDER BY device_number`
	rows, err := r.pool.Query(ctx, query, labNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDevices(rows)
}

func (r *deviceRepository) ListNumbersByLab(ctx context.Context, labNumber string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT device_number FROM devices WHERE lab_number=$1`, labNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *deviceRepository) ListDueMaintenance(ctx context.Context, asOf time.Time) ([]domain.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE next_periodic_date <= $1 ORDER BY next_periodic_date`
	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDevices(rows)
}

func (r *deviceRepository) UpdateStatus(ctx context.Context, serial string, status domain.DeviceStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE devices SET status=$1 WHERE serial_number=$2`, status, serial)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) AdvanceMaintenance(ctx context.Context, serial string, nextDate time.Time, status domain.DeviceStatus) error {
	const query = `UPDATE devices SET next_periodic_date=$1, status=$2 WHERE serial_number=$3`
	cmd, err := r.pool.Exec(ctx, query, nextDate, status, serial)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) CountByLabAndStatus(ctx context.Context, labNumber string, status domain.DeviceStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM devices WHERE lab_number=$1 AND status=$2`, labNumber, status).Scan(&count)
	return count, err
}

func (r *deviceRepository) CountByStatus(ctx context.Context, status domain.DeviceStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM devices WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *deviceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM devices`).Scan(&count)
	return count, err
}

func scanDevices(rows pgx.Rows) ([]domain.Device, error) {
	var result []domain.Device
	for rows.Next() {
		var device domain.Device
		if err := rows.Scan(
			&device.SerialNumber,
			&device.DeviceNumber,
			&device.LabNumber,
			&device.Type,
			&device.Status,
			&device.ArrivalDate,
			&device.NextPeriodicDate,
		); err != nil {
			return nil, err
		}
		result = append(result, device)
	}
	return result, rows.Err()
}
