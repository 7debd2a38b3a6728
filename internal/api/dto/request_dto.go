package dto

import "time"

// CreateServiceRequest payload for ad-hoc service asks.
type CreateServiceRequest struct {
	Request     string `json:"request"`
	ServiceType string `json:"service_type"`
}

// AssignServiceRequest payload for supervisor assignment.
type AssignServiceRequest struct {
	UserID string `json:"user_id"`
}

// HandleServiceRequest payload for the technical reply.
type HandleServiceRequest struct {
	Reply  string `json:"reply"`
	Status string `json:"status"`
}

// ServiceRequestResponse is the wire form of a service request.
type ServiceRequestResponse struct {
	ID                   int64     `json:"id"`
	Request              string    `json:"request"`
	ServiceType          string    `json:"service_type"`
	Status               string    `json:"status"`
	RequestedBy          string    `json:"requested_by"`
	RequestedByFirstName string    `json:"requested_by_first_name"`
	RequestedByLastName  string    `json:"requested_by_last_name"`
	AssignedTo           string    `json:"assigned_to"`
	AssignedToFirstName  string    `json:"assigned_to_first_name"`
	AssignedToLastName   string    `json:"assigned_to_last_name"`
	Reply                *string   `json:"reply,omitempty"`
	RequestDate          time.Time `json:"request_date"`
}
