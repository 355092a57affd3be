package entity

import "time"

// AppointmentStatus is stored as a small integer, 1 meaning active.
type AppointmentStatus int

const (
	AppointmentStatusActive AppointmentStatus = 1
)

// Appointment reserves one doctor slot for one patient.
// AppointmentTime is always the canonical HH:MM:SS form.
type Appointment struct {
	ID              int64             `gorm:"column:appointment_id;primaryKey;autoIncrement" json:"appointment_id"`
	PatientID       int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID        int64             `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusActive
}

// Constraint names of the partial unique indexes guarding active slots.
const (
	DoctorSlotConstraint  = "uq_appointments_doctor_slot_active"
	PatientSlotConstraint = "uq_appointments_patient_slot_active"
)
