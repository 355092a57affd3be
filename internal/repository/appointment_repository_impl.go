package repository

import (
	"context"
	"time"

	"appointment-scheduler/internal/domain/entity"
	domainRepo "appointment-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Doctor", "Patient").Create(appointment).Error
}

func (r *appointmentRepository) ExistsActiveForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, slot string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			doctorID, date.Format(dateLayout), slot, entity.AppointmentStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) ExistsActiveForPatient(ctx context.Context, db *gorm.DB, patientID int64, date time.Time, slot string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("patient_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			patientID, date.Format(dateLayout), slot, entity.AppointmentStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindActiveTimesByDoctorAndDate returns the canonical HH:MM:SS times already
// taken for the doctor on the given date.
func (r *appointmentRepository) FindActiveTimesByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time) ([]string, error) {
	var times []string
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?",
			doctorID, date.Format(dateLayout), entity.AppointmentStatusActive).
		Pluck("to_char(appointment_time, 'HH24:MI:SS')", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindActiveByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Preload("Doctor").
		Where("patient_id = ? AND status = ?", patientID, entity.AppointmentStatusActive).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
