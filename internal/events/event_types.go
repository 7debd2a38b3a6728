package events

import (
	"time"

	"github.com/campus-it/lab-support/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportFiled     EventType = "report_filed"
	EventReportAssigned  EventType = "report_assigned"
	EventReportResolved  EventType = "report_resolved"
	EventMaintenanceDue  EventType = "maintenance_due"
	EventRequestCreated  EventType = "request_created"
	EventRequestAssigned EventType = "request_assigned"
	EventRequestHandled  EventType = "request_handled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportFiledPayload payload.
type ReportFiledPayload struct {
	ReportID     int64             `json:"report_id"`
	SerialNumber string            `json:"serial_number"`
	LabNumber    string            `json:"lab_number"`
	ReportType   domain.ReportType `json:"report_type"`
	ProblemType  string            `json:"problem_type"`
	AssignedTo   string            `json:"assigned_to"`
}

// ReportAssignedPayload payload.
type ReportAssignedPayload struct {
	ReportID   int64  `json:"report_id"`
	AssignedTo string `json:"assigned_to"`
}

// ReportResolvedPayload payload.
type ReportResolvedPayload struct {
	ReportID     int64  `json:"report_id"`
	SerialNumber string `json:"serial_number"`
	ActionTaken  string `json:"action_taken"`
}

// MaintenanceDuePayload payload.
type MaintenanceDuePayload struct {
	ReportID     int64     `json:"report_id"`
	SerialNumber string    `json:"serial_number"`
	LabNumber    string    `json:"lab_number"`
	NextDue      time.Time `json:"next_due"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	RequestID   int64  `json:"request_id"`
	ServiceType string `json:"service_type"`
	AssignedTo  string `json:"assigned_to"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	RequestID  int64  `json:"request_id"`
	AssignedTo string `json:"assigned_to"`
}

// RequestHandledPayload payload.
type RequestHandledPayload struct {
	RequestID int64  `json:"request_id"`
	Status    string `json:"status"`
}
