package converter

import (
	"appointment-scheduler/internal/delivery/dto"
	"appointment-scheduler/internal/domain/entity"
	"appointment-scheduler/internal/scheduling"
	"appointment-scheduler/internal/service"
)

const dateLayout = "2006-01-02"

// BookedToResponse converts a reservation confirmation to AppointmentResponse DTO
func BookedToResponse(booked *service.Booked, specialization string) *dto.AppointmentResponse {
	if booked == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		AppointmentID:   booked.AppointmentID,
		DoctorID:        booked.DoctorID,
		DoctorName:      booked.DoctorName,
		Specialization:  specialization,
		PatientID:       booked.PatientID,
		AppointmentDate: booked.Date.Format(dateLayout),
		AppointmentTime: booked.Time,
		DisplayTime:     scheduling.DisplayTime(booked.Time),
	}
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	slot := canonicalTime(appointment.AppointmentTime)
	response := &dto.AppointmentResponse{
		AppointmentID:   appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		AppointmentDate: appointment.AppointmentDate.Format(dateLayout),
		AppointmentTime: slot,
		DisplayTime:     scheduling.DisplayTime(slot),
	}

	// Include doctor info if preloaded
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.FullName
		response.Specialization = appointment.Doctor.Specialization
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		if resp := AppointmentToResponse(&appointments[i]); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// canonicalTime drops fractional seconds the driver may append to TIME values.
func canonicalTime(raw string) string {
	if len(raw) > 8 {
		raw = raw[:8]
	}
	if canonical, err := scheduling.Normalize(raw); err == nil {
		return canonical
	}
	return raw
}
