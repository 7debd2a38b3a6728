package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/lab-support/internal/domain"
	"github.com/campus-it/lab-support/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contract, including pgx.ErrNoRows on missing rows.

type fakeDeviceRepo struct {
	devices []domain.Device
}

func (f *fakeDeviceRepo) Create(_ context.Context, device *domain.Device) error {
	f.devices = append(f.devices, *device)
	return nil
}

func (f *fakeDeviceRepo) DeleteBySerial(_ context.Context, serial string) error {
	for i := range f.devices {
		if f.devices[i].SerialNumber == serial {
			f.devices = append(f.devices[:i], f.devices[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeDeviceRepo) GetBySerial(_ context.Context, serial string) (*domain.Device, error) {
	for i := range f.devices {
		if f.devices[i].SerialNumber == serial {
			device := f.devices[i]
			return &device, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDeviceRepo) List(_ context.Context) ([]domain.Device, error) {
	return append([]domain.Device(nil), f.devices...), nil
}

func (f *fakeDeviceRepo) ListByLab(_ context.Context, labNumber string) ([]domain.Device, error) {
	var result []domain.Device
	for _, d := range f.devices {
		if d.LabNumber == labNumber {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDeviceRepo) ListNumbersByLab(_ context.Context, labNumber string) ([]int, error) {
	var result []int
	for _, d := range f.devices {
		if d.LabNumber == labNumber {
			result = append(result, d.DeviceNumber)
		}
	}
	return result, nil
}

func (f *fakeDeviceRepo) ListDueMaintenance(_ context.Context, asOf time.Time) ([]domain.Device, error) {
	var result []domain.Device
	for _, d := range f.devices {
		if !d.NextPeriodicDate.After(asOf) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDeviceRepo) UpdateStatus(_ context.Context, serial string, status domain.DeviceStatus) error {
	for i := range f.devices {
		if f.devices[i].SerialNumber == serial {
			f.devices[i].Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeDeviceRepo) AdvanceMaintenance(_ context.Context, serial string, nextDate time.Time, status domain.DeviceStatus) error {
	for i := range f.devices {
		if f.devices[i].SerialNumber == serial {
			f.devices[i].NextPeriodicDate = nextDate
			f.devices[i].Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeDeviceRepo) CountByLabAndStatus(_ context.Context, labNumber string, status domain.DeviceStatus) (int, error) {
	count := 0
	for _, d := range f.devices {
		if d.LabNumber == labNumber && d.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeDeviceRepo) CountByStatus(_ context.Context, status domain.DeviceStatus) (int, error) {
	count := 0
	for _, d := range f.devices {
		if d.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeDeviceRepo) Count(_ context.Context) (int, error) {
	return len(f.devices), nil
}

type fakeLabRepo struct {
	labs []domain.Lab
}

func (f *fakeLabRepo) List(_ context.Context) ([]domain.Lab, error) {
	return append([]domain.Lab(nil), f.labs...), nil
}

func (f *fakeLabRepo) GetByNumber(_ context.Context, number string) (*domain.Lab, error) {
	for i := range f.labs {
		if f.labs[i].Number == number {
			lab := f.labs[i]
			return &lab, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeReportRepo struct {
	reports []domain.Report
	nextID  int64
}

func (f *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	f.nextID++
	report.ID = f.nextID
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) find(id int64) *domain.Report {
	for i := range f.reports {
		if f.reports[i].ID == id {
			return &f.reports[i]
		}
	}
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id int64) (*domain.Report, error) {
	if r := f.find(id); r != nil {
		report := *r
		return &report, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReportRepo) List(_ context.Context) ([]domain.Report, error) {
	return append([]domain.Report(nil), f.reports...), nil
}

func (f *fakeReportRepo) ListBySerial(_ context.Context, serial string) ([]domain.Report, error) {
	var result []domain.Report
	for _, r := range f.reports {
		if r.SerialNumber == serial {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReportRepo) ListByReporter(_ context.Context, userID string) ([]domain.Report, error) {
	var result []domain.Report
	for _, r := range f.reports {
		if r.ReportedBy == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReportRepo) ListByAssigneeAndStatus(_ context.Context, userID string, status domain.ReportStatus) ([]domain.Report, error) {
	var result []domain.Report
	for _, r := range f.reports {
		if r.AssignedTo == userID && r.Status == status {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReportRepo) ListByStatus(_ context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	var result []domain.Report
	for _, r := range f.reports {
		if r.Status == status {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReportRepo) ListUnchecked(_ context.Context) ([]domain.Report, error) {
	var result []domain.Report
	for _, r := range f.reports {
		if !r.CheckedBySupervisor {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReportRepo) Assign(_ context.Context, id int64, assignment repository.ReportAssignment) error {
	r := f.find(id)
	if r == nil {
		return pgx.ErrNoRows
	}
	r.AssignedTo = assignment.AssignedTo
	r.AssignedToFirstName = assignment.AssignedToFirstName
	r.AssignedToLastName = assignment.AssignedToLastName
	r.Status = assignment.Status
	return nil
}

func (f *fakeReportRepo) Resolve(_ context.Context, id int64, resolution repository.ReportResolution) error {
	r := f.find(id)
	if r == nil {
		return pgx.ErrNoRows
	}
	action := resolution.ActionTaken
	repair := resolution.RepairDate
	r.ActionTaken = &action
	r.RepairDate = &repair
	r.Status = resolution.Status
	return nil
}

func (f *fakeReportRepo) MarkChecked(_ context.Context, id int64) error {
	r := f.find(id)
	if r == nil {
		return pgx.ErrNoRows
	}
	r.CheckedBySupervisor = true
	return nil
}

func (f *fakeReportRepo) HasOpenMaintenance(_ context.Context, serial string) (bool, error) {
	for _, r := range f.reports {
		if r.SerialNumber == serial && r.Type == domain.ReportTypeMaintenance && r.Status != domain.ReportStatusResolved {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportRepo) Count(_ context.Context) (int, error) {
	return len(f.reports), nil
}

func (f *fakeReportRepo) CountBySerial(_ context.Context, serial string) (int, error) {
	count := 0
	for _, r := range f.reports {
		if r.SerialNumber == serial {
			count++
		}
	}
	return count, nil
}

func (f *fakeReportRepo) CountByProblemType(_ context.Context) ([]domain.ProblemTypeCount, error) {
	return groupByProblemType(f.reports, ""), nil
}

func (f *fakeReportRepo) CountByProblemTypeForSerial(_ context.Context, serial string) ([]domain.ProblemTypeCount, error) {
	return groupByProblemType(f.reports, serial), nil
}

func groupByProblemType(reports []domain.Report, serial string) []domain.ProblemTypeCount {
	counts := map[string]int{}
	var order []string
	for _, r := range reports {
		if serial != "" && r.SerialNumber != serial {
			continue
		}
		if _, seen := counts[r.ProblemType]; !seen {
			order = append(order, r.ProblemType)
		}
		counts[r.ProblemType]++
	}
	result := make([]domain.ProblemTypeCount, 0, len(order))
	for _, pt := range order {
		result = append(result, domain.ProblemTypeCount{ProblemType: pt, Count: counts[pt]})
	}
	return result
}

type fakeRequestRepo struct {
	requests []domain.ServiceRequest
	nextID   int64
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.ServiceRequest) error {
	f.nextID++
	request.ID = f.nextID
	f.requests = append(f.requests, *request)
	return nil
}

func (f *fakeRequestRepo) find(id int64) *domain.ServiceRequest {
	for i := range f.requests {
		if f.requests[i].ID == id {
			return &f.requests[i]
		}
	}
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.ServiceRequest, error) {
	if r := f.find(id); r != nil {
		request := *r
		return &request, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRequestRepo) List(_ context.Context) ([]domain.ServiceRequest, error) {
	return append([]domain.ServiceRequest(nil), f.requests...), nil
}

func (f *fakeRequestRepo) ListByRequester(_ context.Context, userID string) ([]domain.ServiceRequest, error) {
	var result []domain.ServiceRequest
	for _, r := range f.requests {
		if r.RequestedBy == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) ListByAssigneeAndStatus(_ context.Context, userID, status string) ([]domain.ServiceRequest, error) {
	var result []domain.ServiceRequest
	for _, r := range f.requests {
		if r.AssignedTo == userID && r.Status == status {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) Assign(_ context.Context, id int64, assignment repository.RequestAssignment) error {
	r := f.find(id)
	if r == nil {
		return pgx.ErrNoRows
	}
	r.AssignedTo = assignment.AssignedTo
	r.AssignedToFirstName = assignment.AssignedToFirstName
	r.AssignedToLastName = assignment.AssignedToLastName
	return nil
}

func (f *fakeRequestRepo) Reply(_ context.Context, id int64, reply, status string) error {
	r := f.find(id)
	if r == nil {
		return pgx.ErrNoRows
	}
	r.Reply = &reply
	r.Status = status
	return nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, u := range f.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	nextID        int64
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	f.nextID++
	notification.ID = f.nextID
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) List(_ context.Context) ([]domain.Notification, error) {
	return append([]domain.Notification(nil), f.notifications...), nil
}

func typeMatches(t domain.NotificationType, types []domain.NotificationType) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}

func (f *fakeNotificationRepo) Reassign(_ context.Context, reportID int64, types []domain.NotificationType, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].ReportID == reportID && typeMatches(f.notifications[i].Type, types) {
			f.notifications[i].UserID = userID
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, reportID int64, types []domain.NotificationType) error {
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.ReportID == reportID && typeMatches(n.Type, types) {
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationRepo) CountByUserAndTypes(_ context.Context, userID string, types []domain.NotificationType) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && typeMatches(n.Type, types) {
			count++
		}
	}
	return count, nil
}

type fakeCooldown struct {
	active map[string]bool
}

func newFakeCooldown() *fakeCooldown {
	return &fakeCooldown{active: map[string]bool{}}
}

func (f *fakeCooldown) Active(_ context.Context, serial string) (bool, error) {
	return f.active[serial], nil
}

func (f *fakeCooldown) Set(_ context.Context, serial string, _ time.Duration) error {
	f.active[serial] = true
	return nil
}

type fakeSweepLock struct {
	held map[string]bool
}

func newFakeSweepLock() *fakeSweepLock {
	return &fakeSweepLock{held: map[string]bool{}}
}

func (f *fakeSweepLock) Acquire(_ context.Context, day string) (bool, error) {
	if f.held[day] {
		return false, nil
	}
	f.held[day] = true
	return true, nil
}

func (f *fakeSweepLock) Release(_ context.Context, day string) error {
	delete(f.held, day)
	return nil
}
