package domain

// ProblemTypeCount is one GROUP BY row of reports per problem type.
type ProblemTypeCount struct {
	ProblemType string
	Count       int
}

// ReportSummary extends a problem-type count with its share of the total.
type ReportSummary struct {
	ProblemType string
	Count       int
	Percentage  float64
}

// ReportStatistics is the per-problem-type breakdown over a report set.
type ReportStatistics struct {
	TotalCount int
	Details    []ReportSummary
}

// DeviceStatistics counts devices by health.
type DeviceStatistics struct {
	TotalCount    int
	WorkingCount  int
	ReportedCount int
}

// MemberProgress is the open workload of one technical member.
type MemberProgress struct {
	UserID          string
	FirstName       string
	LastName        string
	NumberOfReports int
}
