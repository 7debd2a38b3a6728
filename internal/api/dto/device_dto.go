package dto

import (
	"time"

	"github.com/campus-it/lab-support/internal/domain"
)

// AddDeviceRequest payload for device registration.
type AddDeviceRequest struct {
	SerialNumber string `json:"serial_number"`
	Type         string `json:"type"`
	LabNumber    string `json:"lab_number"`
}

// DeviceResponse is the wire form of a device.
type DeviceResponse struct {
	SerialNumber     string              `json:"serial_number"`
	DeviceNumber     int                 `json:"device_number"`
	LabNumber        string              `json:"lab_number"`
	Type             string              `json:"type"`
	Status           domain.DeviceStatus `json:"status"`
	ArrivalDate      time.Time           `json:"arrival_date"`
	NextPeriodicDate time.Time           `json:"next_periodic_date"`
}

// LabResponse is the wire form of a lab.
type LabResponse struct {
	Number   string `json:"lab_number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

// LabDeviceCountsResponse summarizes device health of one lab.
type LabDeviceCountsResponse struct {
	LabNumber     string `json:"lab_number"`
	WorkingCount  int    `json:"working_count"`
	ReportedCount int    `json:"reported_count"`
	TotalDevices  int    `json:"total_devices"`
}

// DeviceReportsResponse pairs a device with its report history.
type DeviceReportsResponse struct {
	Device  DeviceResponse   `json:"device"`
	Reports []ReportResponse `json:"reports"`
}
