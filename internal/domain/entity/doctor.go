package entity

import "gorm.io/datatypes"

// Doctor is a bookable practitioner. AvailableDays holds the recurring day
// pattern ("Mon-Fri", "mon, wed, fri") and AvailableSlots the JSON slot
// template repeated on every matching day.
type Doctor struct {
	ID                  int64          `gorm:"column:doctor_id;primaryKey;autoIncrement" json:"doctor_id"`
	FullName            string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization      string         `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears     int            `gorm:"not null;default:0" json:"experience_years"`
	HospitalAffiliation string         `gorm:"type:varchar(255)" json:"hospital_affiliation,omitempty"`
	AvailableDays       string         `gorm:"type:varchar(100);not null" json:"available_days"`
	AvailableSlots      datatypes.JSON `gorm:"type:jsonb" json:"available_slots"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	Specialization string // ILIKE match
}
