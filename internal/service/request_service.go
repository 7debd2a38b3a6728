package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/events"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// RequestService coordinates ad-hoc service requests.
type RequestService struct {
	requests      repository.ServiceRequestRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	router        *supervisorRouter
	dispatcher    events.Dispatcher
	now           func() time.Time
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo      repository.ServiceRequestRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
	Now              func() time.Time
}

// RequestCreateInput describes a new service request.
type RequestCreateInput struct {
	Request     string
	ServiceType string
	RequestedBy string
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	svc := &RequestService{
		requests:      deps.RequestRepo,
		users:         deps.UserRepo,
		notifications: deps.NotificationRepo,
		router:        &supervisorRouter{users: deps.UserRepo, notifications: deps.NotificationRepo},
		dispatcher:    deps.Dispatcher,
		now:           deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// CreateRequest files a service request assigned to the routing supervisor
// and creates its notification.
func (s *RequestService) CreateRequest(ctx context.Context, input RequestCreateInput) (*domain.ServiceRequest, error) {
	text := strings.TrimSpace(input.Request)
	if text == "" || input.RequestedBy == "" {
		return nil, apperrors.NewValidationError("request, requested_by required", nil)
	}

	requester, err := s.users.GetByID(ctx, input.RequestedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": input.RequestedBy})
		}
		return nil, apperrors.MapError(err)
	}

	supervisor, err := s.router.Route(ctx)
	if err != nil {
		return nil, err
	}

	request := &domain.ServiceRequest{
		Request:              text,
		ServiceType:          strings.TrimSpace(input.ServiceType),
		Status:               domain.RequestStatusPending,
		RequestedBy:          requester.ID,
		RequestedByFirstName: requester.FirstName,
		RequestedByLastName:  requester.LastName,
		AssignedTo:           supervisor.ID,
		AssignedToFirstName:  supervisor.FirstName,
		AssignedToLastName:   supervisor.LastName,
		RequestDate:          dateOnly(s.now()),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	notification := &domain.Notification{
		ReportID: request.ID,
		UserID:   supervisor.ID,
		Type:     domain.NotificationTypeRequest,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, requester.ID, events.Event{
		Type: events.EventRequestCreated,
		Payload: events.RequestCreatedPayload{
			RequestID:   request.ID,
			ServiceType: request.ServiceType,
			AssignedTo:  request.AssignedTo,
		},
	})
	return request, nil
}

// MyRequests lists requests filed by one user.
func (s *RequestService) MyRequests(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	requests, err := s.requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// NewRequestsByAssignee lists the pending requests assigned to a user.
func (s *RequestService) NewRequestsByAssignee(ctx context.Context, userID string) ([]domain.ServiceRequest, error) {
	requests, err := s.requests.ListByAssigneeAndStatus(ctx, userID, domain.RequestStatusPending)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ListRequests returns every service request.
func (s *RequestService) ListRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// AssignRequest moves a request to a technical member. Assignment does not
// change the request status; only handling does.
func (s *RequestService) AssignRequest(ctx context.Context, actorID string, requestID int64, userID string) (*domain.ServiceRequest, error) {
	member, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	assignment := repository.RequestAssignment{
		AssignedTo:          member.ID,
		AssignedToFirstName: member.FirstName,
		AssignedToLastName:  member.LastName,
	}
	if err := s.requests.Assign(ctx, requestID, assignment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}

	requestTypes := []domain.NotificationType{domain.NotificationTypeRequest}
	if err := s.notifications.Reassign(ctx, requestID, requestTypes, member.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.Event{
		Type:    events.EventRequestAssigned,
		Payload: events.RequestAssignedPayload{RequestID: requestID, AssignedTo: member.ID},
	})
	return s.getRequest(ctx, requestID)
}

// HandleRequest records the technical reply and caller-supplied status, then
// removes the notification.
func (s *RequestService) HandleRequest(ctx context.Context, actorID string, requestID int64, reply, status string) (*domain.ServiceRequest, error) {
	if strings.TrimSpace(reply) == "" || strings.TrimSpace(status) == "" {
		return nil, apperrors.NewValidationError("reply, status required", nil)
	}

	if _, err := s.getRequest(ctx, requestID); err != nil {
		return nil, err
	}

	if err := s.requests.Reply(ctx, requestID, strings.TrimSpace(reply), strings.TrimSpace(status)); err != nil {
		return nil, apperrors.MapError(err)
	}

	requestTypes := []domain.NotificationType{domain.NotificationTypeRequest}
	if err := s.notifications.Delete(ctx, requestID, requestTypes); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.Event{
		Type:    events.EventRequestHandled,
		Payload: events.RequestHandledPayload{RequestID: requestID, Status: strings.TrimSpace(status)},
	})
	return s.getRequest(ctx, requestID)
}

func (s *RequestService) getRequest(ctx context.Context, requestID int64) (*domain.ServiceRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

func (s *RequestService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ActorID = actorID
	_ = s.dispatcher.Publish(ctx, event)
}
