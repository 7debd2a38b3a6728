package dto

import (
	"time"

	"github.com/campus-it/lab-support/internal/domain"
)

// FileReportRequest payload for faculty problem reports.
type FileReportRequest struct {
	SerialNumber       string `json:"serial_number"`
	ProblemType        string `json:"problem_type"`
	ProblemDescription string `json:"problem_description"`
}

// AssignReportRequest payload for supervisor assignment.
type AssignReportRequest struct {
	UserID string `json:"user_id"`
}

// ResolveReportRequest payload for report close-out.
type ResolveReportRequest struct {
	ActionTaken string `json:"action_taken"`
}

// ReportResponse is the wire form of a report.
type ReportResponse struct {
	ID                  int64               `json:"id"`
	DeviceNumber        int                 `json:"device_number"`
	SerialNumber        string              `json:"serial_number"`
	LabNumber           string              `json:"lab_number"`
	Type                domain.ReportType   `json:"report_type"`
	Status              domain.ReportStatus `json:"status"`
	ProblemType         string              `json:"problem_type"`
	ProblemDescription  string              `json:"problem_description"`
	ReportedBy          string              `json:"reported_by"`
	ReportedByFirstName string              `json:"reported_by_first_name"`
	ReportedByLastName  string              `json:"reported_by_last_name"`
	AssignedTo          string              `json:"assigned_to"`
	AssignedToFirstName string              `json:"assigned_to_first_name"`
	AssignedToLastName  string              `json:"assigned_to_last_name"`
	ReportDate          time.Time           `json:"report_date"`
	RepairDate          *time.Time          `json:"repair_date,omitempty"`
	ActionTaken         *string             `json:"action_taken,omitempty"`
	CheckedBySupervisor bool                `json:"checked_by_supervisor"`
}

// NotificationResponse is the wire form of a notification.
type NotificationResponse struct {
	ID        int64                   `json:"id"`
	ReportID  int64                   `json:"report_id"`
	UserID    string                  `json:"user_id"`
	Type      domain.NotificationType `json:"notification_type"`
	CreatedAt time.Time               `json:"created_at"`
}
