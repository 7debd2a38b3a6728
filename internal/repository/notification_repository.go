package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/lab-support/internal/domain"
)

// NotificationRepository encapsulates notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	List(ctx context.Context) ([]domain.Notification, error)
	// Reassign moves the notification for one report/request to a new owner.
	Reassign(ctx context.Context, reportID int64, types []domain.NotificationType, userID string) error
	// Delete removes the notification when the underlying item is handled.
	Delete(ctx context.Context, reportID int64, types []domain.NotificationType) error
	CountByUserAndTypes(ctx context.Context, userID string, types []domain.NotificationType) (int, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (report_id, user_id, notification_type)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.ReportID,
		notification.UserID,
		notification.Type,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, report_id, user_id, notification_type, created_at FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.ReportID,
			&notification.UserID,
			&notification.Type,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}

func (r *notificationRepository) Reassign(ctx context.Context, reportID int64, types []domain.NotificationType, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET user_id=$1 WHERE report_id=$2 AND notification_type = ANY($3)`,
		userID, reportID, typeStrings(types))
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, reportID int64, types []domain.NotificationType) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE report_id=$1 AND notification_type = ANY($2)`,
		reportID, typeStrings(types))
	return err
}

func (r *notificationRepository) CountByUserAndTypes(ctx context.Context, userID string, types []domain.NotificationType) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND notification_type = ANY($2)`,
		userID, typeStrings(types)).Scan(&count)
	return count, err
}

func typeStrings(types []domain.NotificationType) []string {
	result := make([]string, 0, len(types))
	for _, t := range types {
		result = append(result, string(t))
	}
	return result
}
