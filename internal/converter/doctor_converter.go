package converter

import (
	"appointment-scheduler/internal/delivery/dto"
	"appointment-scheduler/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                  doctor.ID,
		FullName:            doctor.FullName,
		Specialization:      doctor.Specialization,
		ExperienceYears:     doctor.ExperienceYears,
		HospitalAffiliation: doctor.HospitalAffiliation,
		AvailableDays:       doctor.AvailableDays,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		if resp := DoctorToResponse(&doctors[i]); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
