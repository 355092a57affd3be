package dto

// Response DTOs

type DoctorResponse struct {
	ID                  int64  `json:"doctor_id"`
	FullName            string `json:"full_name"`
	Specialization      string `json:"specialization"`
	ExperienceYears     int    `json:"experience_years"`
	HospitalAffiliation string `json:"hospital_affiliation,omitempty"`
	AvailableDays       string `json:"available_days"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type SlotResponse struct {
	Time    string `json:"time"`    // canonical HH:MM:SS, what the booking endpoint accepts
	Display string `json:"display"` // e.g. "9:00 AM"
}

// AvailableSlotsResponse lists the free slots of one doctor on one date.
// Available is false when the doctor does not work that weekday.
type AvailableSlotsResponse struct {
	DoctorID  int64          `json:"doctor_id"`
	Date      string         `json:"date"`
	Available bool           `json:"available"`
	Bookable  bool           `json:"bookable"`
	Slots     []SlotResponse `json:"slots"`
}
