package handlers

import (
	"github.com/campus-it/lab-support/internal/api/dto"
	"github.com/campus-it/lab-support/internal/domain"
)

func deviceResponse(device *domain.Device) dto.DeviceResponse {
	return dto.DeviceResponse{
		SerialNumber:     device.SerialNumber,
		DeviceNumber:     device.DeviceNumber,
		LabNumber:        device.LabNumber,
		Type:             device.Type,
		Status:           device.Status,
		ArrivalDate:      device.ArrivalDate,
		NextPeriodicDate: device.NextPeriodicDate,
	}
}

func deviceResponses(devices []domain.Device) []dto.DeviceResponse {
	result := make([]dto.DeviceResponse, 0, len(devices))
	for i := range devices {
		result = append(result, deviceResponse(&devices[i]))
	}
	return result
}

func labResponses(labs []domain.Lab) []dto.LabResponse {
	result := make([]dto.LabResponse, 0, len(labs))
	for _, lab := range labs {
		result = append(result, dto.LabResponse{
			Number:   lab.Number,
			Capacity: lab.Capacity,
			Location: lab.Location,
		})
	}
	return result
}

func reportResponse(report *domain.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:                  report.ID,
		DeviceNumber:        report.DeviceNumber,
		SerialNumber:        report.SerialNumber,
		LabNumber:           report.LabNumber,
		Type:                report.Type,
		Status:              report.Status,
		ProblemType:         report.ProblemType,
		ProblemDescription:  report.ProblemDescription,
		ReportedBy:          report.ReportedBy,
		ReportedByFirstName: report.ReportedByFirstName,
		ReportedByLastName:  report.ReportedByLastName,
		AssignedTo:          report.AssignedTo,
		AssignedToFirstName: report.AssignedToFirstName,
		AssignedToLastName:  report.AssignedToLastName,
		ReportDate:          report.ReportDate,
		RepairDate:          report.RepairDate,
		ActionTaken:         report.ActionTaken,
		CheckedBySupervisor: report.CheckedBySupervisor,
	}
}

func reportResponses(reports []domain.Report) []dto.ReportResponse {
	result := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		result = append(result, reportResponse(&reports[i]))
	}
	return result
}

func requestResponse(request *domain.ServiceRequest) dto.ServiceRequestResponse {
	return dto.ServiceRequestResponse{
		ID:                   request.ID,
		Request:              request.Request,
		ServiceType:          request.ServiceType,
		Status:               request.Status,
		RequestedBy:          request.RequestedBy,
		RequestedByFirstName: request.RequestedByFirstName,
		RequestedByLastName:  request.RequestedByLastName,
		AssignedTo:           request.AssignedTo,
		AssignedToFirstName:  request.AssignedToFirstName,
		AssignedToLastName:   request.AssignedToLastName,
		Reply:                request.Reply,
		RequestDate:          request.RequestDate,
	}
}

func requestResponses(requests []domain.ServiceRequest) []dto.ServiceRequestResponse {
	result := make([]dto.ServiceRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, requestResponse(&requests[i]))
	}
	return result
}

func notificationResponses(notifications []domain.Notification) []dto.NotificationResponse {
	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, dto.NotificationResponse{
			ID:        n.ID,
			ReportID:  n.ReportID,
			UserID:    n.UserID,
			Type:      n.Type,
			CreatedAt: n.CreatedAt,
		})
	}
	return result
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Email:     user.Email,
	}
}

func userResponses(users []domain.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, userResponse(&users[i]))
	}
	return result
}

func statisticsResponse(stats *domain.ReportStatistics) dto.ReportStatisticsResponse {
	details := make([]dto.ReportSummaryResponse, 0, len(stats.Details))
	for _, entry := range stats.Details {
		details = append(details, dto.ReportSummaryResponse{
			ProblemType: entry.ProblemType,
			Count:       entry.Count,
			Percentage:  entry.Percentage,
		})
	}
	return dto.ReportStatisticsResponse{TotalCount: stats.TotalCount, Details: details}
}
