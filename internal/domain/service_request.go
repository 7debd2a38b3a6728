package domain

import "time"

// RequestStatusPending is the initial status for service requests. Unlike
// reports, the follow-up status vocabulary is free text supplied by the
// handling technician.
const RequestStatusPending = "PENDING"

// ServiceRequest is a non-device support ask (e.g. unblocking a website),
// tracked analogously to a Report.
type ServiceRequest struct {
	ID                   int64
	Request              string
	ServiceType          string
	Status               string
	RequestedBy          string
	RequestedByFirstName string
	RequestedByLastName  string
	AssignedTo           string
	AssignedToFirstName  string
	AssignedToLastName   string
	Reply                *string
	RequestDate          time.Time
}
