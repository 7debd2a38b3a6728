package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/lab-support/internal/domain"
)

// RequestAssignment carries the fields written when a request is reassigned.
type RequestAssignment struct {
	AssignedTo          string
	AssignedToFirstName string
	AssignedToLastName  string
}

// ServiceRequestRepository encapsulates service-request persistence.
type ServiceRequestRepository interface {
	Create(ctx context.Context, request *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	List(ctx context.Context) ([]domain.ServiceRequest, error)
	ListByRequester(ctx context.Context, userID string) ([]domain.ServiceRequest, error)
	ListByAssigneeAndStatus(ctx context.Context, userID, status string) ([]domain.ServiceRequest, error)
	Assign(ctx context.Context, id int64, assignment RequestAssignment) error
	Reply(ctx context.Context, id int64, reply, status string) error
}

type serviceRequestRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRequestRepository returns a Postgres-backed implementation.
func NewServiceRequestRepository(pool *pgxpool.Pool) ServiceRequestRepository {
	return &serviceRequestRepository{pool: pool}
}

const requestColumns = `id, request, service_type, status,
               requested_by, requested_by_first_name, requested_by_last_name,
               assigned_to, assigned_to_first_name, assigned_to_last_name,
               reply, request_date`

func (r *serviceRequestRepository) Create(ctx context.Context, request *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (request, service_type, status,
            requested_by, requested_by_first_name, requested_by_last_name,
            assigned_to, assigned_to_first_name, assigned_to_last_name,
            request_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		request.Request,
		request.ServiceType,
		request.Status,
		request.RequestedBy,
		request.RequestedByFirstName,
		request.RequestedByLastName,
		request.AssignedTo,
		request.AssignedToFirstName,
		request.AssignedToLastName,
		request.RequestDate,
	).Scan(&request.ID)
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE id=$1`
	var request domain.ServiceRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(requestFields(&request)...); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) List(ctx context.Context) ([]domain.ServiceRequest, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM service_requests ORDER BY request_date DESC, id DESC`)
}

func (r *serviceRequestRepository) ListByRequester(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE requested_by=$1 ORDER BY request_date DESC, id DESC`, userID)
}

func (r *serviceRequestRepository) ListByAssigneeAndStatus(ctx context.Context, userID, status string) ([]domain.ServiceRequest, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE assigned_to=$1 AND status=$2 ORDER BY request_date DESC, id DESC`, userID, status)
}

func (r *serviceRequestRepository) Assign(ctx context.Context, id int64, assignment RequestAssignment) error {
	const query = `
        UPDATE service_requests SET assigned_to=$1, assigned_to_first_name=$2, assigned_to_last_name=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		assignment.AssignedTo,
		assignment.AssignedToFirstName,
		assignment.AssignedToLastName,
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

func (r *serviceRequestRepository) Reply(ctx context.Context, id int64, reply, status string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE service_requests SET reply=$1, status=$2 WHERE id=$3`, reply, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRequestRepository) query(ctx context.Context, query string, args ...any) ([]domain.ServiceRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceRequest
	for rows.Next() {
		var request domain.ServiceRequest
		if err := rows.Scan(requestFields(&request)...); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

func requestFields(request *domain.ServiceRequest) []any {
	return []any{
		&request.ID,
		&request.Request,
		&request.ServiceType,
		&request.Status,
		&request.RequestedBy,
		&request.RequestedByFirstName,
		&request.RequestedByLastName,
		&request.AssignedTo,
		&request.AssignedToFirstName,
		&request.AssignedToLastName,
		&request.Reply,
		&request.RequestDate,
	}
}
