package domain

// Lab is a physical computer lab with a fixed device capacity.
type Lab struct {
	Number   string
	Capacity int
	Location string
}

// LabDeviceCounts summarizes device health for one lab.
type LabDeviceCounts struct {
	LabNumber     string
	WorkingCount  int
	ReportedCount int
	TotalDevices  int
}
