package repository

import (
	"context"
	"time"

	"appointment-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	ExistsActiveForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, slot string) (bool, error)
	ExistsActiveForPatient(ctx context.Context, db *gorm.DB, patientID int64, date time.Time, slot string) (bool, error)
	FindActiveTimesByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time) ([]string, error)
	FindActiveByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error)
}
