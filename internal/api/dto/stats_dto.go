package dto

// ReportSummaryResponse is one problem-type slice of the breakdown.
type ReportSummaryResponse struct {
	ProblemType string  `json:"problem_type"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// ReportStatisticsResponse is the per-problem-type breakdown.
type ReportStatisticsResponse struct {
	TotalCount int                     `json:"total_count"`
	Details    []ReportSummaryResponse `json:"details"`
}

// DeviceStatisticsResponse counts devices by health.
type DeviceStatisticsResponse struct {
	TotalCount    int `json:"total_count"`
	WorkingCount  int `json:"working_count"`
	ReportedCount int `json:"reported_count"`
}

// MemberProgressResponse is one technical member's open workload.
type MemberProgressResponse struct {
	UserID          string `json:"user_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	NumberOfReports int    `json:"number_of_reports"`
}
