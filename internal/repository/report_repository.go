package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/lab-support/internal/domain"
)

// ReportAssignment carries the fields written when a report is reassigned.
type ReportAssignment struct {
	AssignedTo          string
	AssignedToFirstName string
	AssignedToLastName  string
	Status              domain.ReportStatus
}

// ReportResolution carries the close-out fields for a resolved report.
type ReportResolution struct {
	ActionTaken string
	RepairDate  time.Time
	Status      domain.ReportStatus
}

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
	ListBySerial(ctx context.Context, serial string) ([]domain.Report, error)
	ListByReporter(ctx context.Context, userID string) ([]domain.Report, error)
	ListByAssigneeAndStatus(ctx context.Context, userID string, status domain.ReportStatus) ([]domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error)
	ListUnchecked(ctx context.Context) ([]domain.Report, error)
	Assign(ctx context.Context, id int64, assignment ReportAssignment) error
	Resolve(ctx context.Context, id int64, resolution ReportResolution) error
	MarkChecked(ctx context.Context, id int64) error
	HasOpenMaintenance(ctx context.Context, serial string) (bool, error)
	Count(ctx context.Context) (int, error)
	CountBySerial(ctx context.Context, serial string) (int, error)
	CountByProblemType(ctx context.Context) ([]domain.ProblemTypeCount, error)
	CountByProblemTypeForSerial(ctx context.Context, serial string) ([]domain.ProblemTypeCount, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, device_number, serial_number, lab_number, report_type, status,
               problem_type, problem_description,
               reported_by, reported_by_first_name, reported_by_last_name,
               assigned_to, assigned_to_first_name, assigned_to_last_name,
               report_date, repair_date, action_taken, checked_by_supervisor`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (device_number, serial_number, lab_number, report_type, status,
            problem_type, problem_description,
            reported_by, reported_by_first_name, reported_by_last_name,
            assigned_to, assigned_to_first_name, assigned_to_last_name,
            report_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		report.DeviceNumber,
		report.SerialNumber,
		report.LabNumber,
		report.Type,
		report.Status,
		report.ProblemType,
		report.ProblemDescription,
		report.ReportedBy,
		report.ReportedByFirstName,
		report.ReportedByLastName,
		report.AssignedTo,
		report.AssignedToFirstName,
		report.AssignedToLastName,
		report.ReportDate,
	).Scan(&report.ID)
}

func (r *reportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	var report domain.Report
	if err := r.pool.QueryRow(ctx, query, id).Scan(reportFields(&report)...); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY report_date DESC, id DESC`)
}

func (r *reportRepository) ListBySerial(ctx context.Context, serial string) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports WHERE serial_number=$1 ORDER BY report_date DESC, id DESC`, serial)
}

func (r *reportRepository) ListByReporter(ctx context.Context, userID string) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports WHERE reported_by=$1 ORDER BY report_date DESC, id DESC`, userID)
}

func (r *reportRepository) ListByAssigneeAndStatus(ctx context.Context, userID string, status domain.ReportStatus) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports WHERE assigned_to=$1 AND status=$2 ORDER BY report_date DESC, id DESC`, userID, status)
}

func (r *reportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports WHERE status=$1 ORDER BY report_date DESC, id DESC`, status)
}

func (r *reportRepository) ListUnchecked(ctx context.Context) ([]domain.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM reports WHERE checked_by_supervisor=FALSE ORDER BY report_date DESC, id DESC`)
}

func (r *reportRepository) Assign(ctx context.Context, id int64, assignment ReportAssignment) error {
	const query = `
        UPDATE reports SET assigned_to=$1, assigned_to_first_name=$2, assigned_to_last_name=$3, status=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		assignment.AssignedTo,
		assignment.AssignedToFirstName,
		assignment.AssignedToLastName,
		assignment.Status,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Resolve(ctx context.Context, id int64, resolution ReportResolution) error {
	const query = `
        UPDATE reports SET status=$1, action_taken=$2, repair_date=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		resolution.Status,
		resolution.ActionTaken,
		resolution.RepairDate,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) MarkChecked(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reports SET checked_by_supervisor=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) HasOpenMaintenance(ctx context.Context, serial string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM reports
            WHERE serial_number=$1 AND report_type=$2 AND status <> $3
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, serial, domain.ReportTypeMaintenance, domain.ReportStatusResolved).Scan(&exists)
	return exists, err
}

func (r *reportRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count)
	return count, err
}

func (r *reportRepository) CountBySerial(ctx context.Context, serial string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE serial_number=$1`, serial).Scan(&count)
	return count, err
}

func (r *reportRepository) CountByProblemType(ctx context.Context) ([]domain.ProblemTypeCount, error) {
	return r.queryCounts(ctx, `SELECT problem_type, COUNT(*) FROM reports GROUP BY problem_type`)
}

func (r *reportRepository) CountByProblemTypeForSerial(ctx context.Context, serial string) ([]domain.ProblemTypeCount, error) {
	return r.queryCounts(ctx, `SELECT problem_type, COUNT(*) FROM reports WHERE serial_number=$1 GROUP BY problem_type`, serial)
}

func (r *reportRepository) query(ctx context.Context, query string, args ...any) ([]domain.Report, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) queryCounts(ctx context.Context, query string, args ...any) ([]domain.ProblemTypeCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProblemTypeCount
	for rows.Next() {
		var entry domain.ProblemTypeCount
		if err := rows.Scan(&entry.ProblemType, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func reportFields(report *domain.Report) []any {
	return []any{
		&report.ID,
		&report.DeviceNumber,
		&report.SerialNumber,
		&report.LabNumber,
		&report.Type,
		&report.Status,
		&report.ProblemType,
		&report.ProblemDescription,
		&report.ReportedBy,
		&report.ReportedByFirstName,
		&report.ReportedByLastName,
		&report.AssignedTo,
		&report.AssignedToFirstName,
		&report.AssignedToLastName,
		&report.ReportDate,
		&report.RepairDate,
		&report.ActionTaken,
		&report.CheckedBySupervisor,
	}
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(reportFields(&report)...); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
