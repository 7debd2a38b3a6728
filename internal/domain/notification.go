package domain

import "time"

// NotificationType mirrors the report/request kind the notification tracks.
type NotificationType string

const (
	NotificationTypeIssue       NotificationType = "ISSUE"
	NotificationTypeMaintenance NotificationType = "PERIODIC_MAINTENANCE"
	NotificationTypeRequest     NotificationType = "SERVICE_REQUEST"
)

// ReportNotificationTypes are the types counted as open report work.
var ReportNotificationTypes = []NotificationType{
	NotificationTypeIssue,
	NotificationTypeMaintenance,
}

// Notification marks an unresolved report or request for the user who should
// act on it. Existence is the signal: it is created with the item, moved on
// assignment, and deleted when the item is handled.
type Notification struct {
	ID        int64
	ReportID  int64
	UserID    string
	Type      NotificationType
	CreatedAt time.Time
}
