package service

import (
	"context"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// supervisorRouter picks the default assignee for new reports and requests.
// Multiple supervisors are supported: the one with the fewest open
// notifications wins, ties broken by user id ordering from the repository.
type supervisorRouter struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
}

var allNotificationTypes = []domain.NotificationType{
	domain.NotificationTypeIssue,
	domain.NotificationTypeMaintenance,
	domain.NotificationTypeRequest,
}

func (r *supervisorRouter) Route(ctx context.Context) (*domain.User, error) {
	supervisors, err := r.users.ListByRole(ctx, domain.RoleSupervisor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(supervisors) == 0 {
		return nil, apperrors.NewNotFound("supervisor", nil)
	}

	best := &supervisors[0]
	bestLoad := -1
	for i := range supervisors {
		load, err := r.notifications.CountByUserAndTypes(ctx, supervisors[i].ID, allNotificationTypes)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if bestLoad < 0 || load < bestLoad {
			best = &supervisors[i]
			bestLoad = load
		}
	}
	return best, nil
}
