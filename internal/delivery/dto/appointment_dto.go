package dto

// Request DTOs

type AutoBookRequest struct {
	PatientEmail           string   `json:"patient_email" validate:"required,email"`
	RecommendedSpecialists []string `json:"recommended_specialists" validate:"required,min=1,dive,required"`
}

type BookSlotRequest struct {
	PatientEmail    string `json:"patient_email" validate:"required,email"`
	DoctorID        int64  `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	AppointmentID   int64  `json:"appointment_id,omitempty"`
	DoctorID        int64  `json:"doctor_id"`
	DoctorName      string `json:"doctor_name,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	PatientID       int64  `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	DisplayTime     string `json:"display_time"`
}

// AutoBookResponse keeps "exhausted" structurally apart from "booked":
// Appointment is only present when Status is "booked".
type AutoBookResponse struct {
	Status      string               `json:"status"`
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
