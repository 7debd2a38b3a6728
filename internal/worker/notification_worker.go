package worker

import (
	"go.uber.org/zap"

	"github.com/campus-it/lab-support/internal/service"
)

// StartNotificationWorker subscribes the notification service to domain
// events so report and request lifecycle changes produce deliveries.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification handlers registered")
}
