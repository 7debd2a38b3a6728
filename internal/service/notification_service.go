package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-it/lab-support/internal/config"
	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/events"
	"github.com/campus-it/lab-support/internal/repository"
	apperrors "github.com/campus-it/lab-support/pkg/util/errorutil"
)

// NotificationService serves notification queries and emits delivery stubs
// for domain events.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// List returns every open notification.
func (n *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	notifications, err := n.notifications.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}

// ReportCountForUser counts open report notifications owned by a user.
func (n *NotificationService) ReportCountForUser(ctx context.Context, userID string) (int, error) {
	count, err := n.notifications.CountByUserAndTypes(ctx, userID, domain.ReportNotificationTypes)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// RequestCountForUser counts open service-request notifications owned by a user.
func (n *NotificationService) RequestCountForUser(ctx context.Context, userID string) (int, error) {
	count, err := n.notifications.CountByUserAndTypes(ctx, userID, []domain.NotificationType{domain.NotificationTypeRequest})
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReportFiled, n.handleEvent("ReportFiled"))
	n.dispatcher.Subscribe(events.EventReportAssigned, n.handleEvent("ReportAssigned"))
	n.dispatcher.Subscribe(events.EventReportResolved, n.handleEvent("ReportResolved"))
	n.dispatcher.Subscribe(events.EventMaintenanceDue, n.handleEvent("MaintenanceDue"))
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleEvent("RequestCreated"))
	n.dispatcher.Subscribe(events.EventRequestAssigned, n.handleEvent("RequestAssigned"))
	n.dispatcher.Subscribe(events.EventRequestHandled, n.handleEvent("RequestHandled"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("event_id", event.ID),
			zap.String("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
		n.sendEmailStub(event)
		n.sendWebhookStub(event)
		return nil
	}
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
