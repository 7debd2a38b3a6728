package domain

import "time"

// ReportType distinguishes user-filed issues from generated maintenance work.
type ReportType string

const (
	ReportTypeIssue       ReportType = "ISSUE"
	ReportTypeMaintenance ReportType = "PERIODIC_MAINTENANCE"
)

// ReportStatus enumerates lifecycle states for reports.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusInProcess ReportStatus = "IN_PROCESS"
	ReportStatusResolved  ReportStatus = "RESOLVED"
)

// SystemReporterID identifies maintenance reports generated by the sweep.
const SystemReporterID = "SYSTEM"

// Report records a device malfunction or a scheduled maintenance need.
// Reporter and assignee names are copied in at creation/assignment time as an
// audit snapshot; they are not kept in sync if the user is later renamed.
type Report struct {
	ID                  int64
	DeviceNumber        int
	SerialNumber        string
	LabNumber           string
	Type                ReportType
	Status              ReportStatus
	ProblemType         string
	ProblemDescription  string
	ReportedBy          string
	ReportedByFirstName string
	ReportedByLastName  string
	AssignedTo          string
	AssignedToFirstName string
	AssignedToLastName  string
	ReportDate          time.Time
	RepairDate          *time.Time
	ActionTaken         *string
	CheckedBySupervisor bool
}

// DeviceReports pairs a device with its full report history.
type DeviceReports struct {
	Device  Device
	Reports []Report
}
