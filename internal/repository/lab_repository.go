package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/lab-support/internal/domain"
)

// LabRepository encapsulates lab persistence.
type LabRepository interface {
	List(ctx context.Context) ([]domain.Lab, error)
	GetByNumber(ctx context.Context, number string) (*domain.Lab, error)
}

type labRepository struct {
	pool *pgxpool.Pool
}

// NewLabRepository returns a Postgres-backed implementation.
func NewLabRepository(pool *pgxpool.Pool) LabRepository {
	return &labRepository{pool: pool}
}

func (r *labRepository) List(ctx context.Context) ([]domain.Lab, error) {
	rows, err := r.pool.Query(ctx, `SELECT lab_number, capacity, location FROM labs ORDER BY lab_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lab
	for rows.Next() {
		var lab domain.Lab
		if err := rows.Scan(&lab.Number, &lab.Capacity, &lab.Location); err != nil {
			return nil, err
		}
		result = append(result, lab)
	}
	return result, rows.Err()
}

func (r *labRepository) GetByNumber(ctx context.Context, number string) (*domain.Lab, error) {
	var lab domain.Lab
	if err := r.pool.QueryRow(ctx,
		`SELECT lab_number, capacity, location FROM labs WHERE lab_number=$1`, number).Scan(
		&lab.Number,
		&lab.Capacity,
		&lab.Location,
	); err != nil {
		return nil, err
	}
	return &lab, nil
}
