package domain

import "time"

// DeviceStatus enumerates operational states for lab devices.
type DeviceStatus string

const (
	DeviceStatusWorking  DeviceStatus = "WORKING"
	DeviceStatusReported DeviceStatus = "REPORTED"
)

// Device is a lab machine tracked by serial number.
type Device struct {
	SerialNumber     string
	DeviceNumber     int
	LabNumber        string
	Type             string
	Status           DeviceStatus
	ArrivalDate      time.Time
	NextPeriodicDate time.Time
}
