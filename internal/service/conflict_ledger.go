package service

import (
	"context"
	"time"

	"appointment-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

// ConflictLedger answers occupancy questions over active appointments.
// Pass the root *gorm.DB for advisory pre-checks and the transaction handle
// for authoritative re-checks.
type ConflictLedger struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictLedger(appointmentRepo repository.AppointmentRepository) *ConflictLedger {
	return &ConflictLedger{appointmentRepo: appointmentRepo}
}

func (l *ConflictLedger) IsDoctorSlotOccupied(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, slot string) (bool, error) {
	return l.appointmentRepo.ExistsActiveForDoctor(ctx, db, doctorID, date, slot)
}

func (l *ConflictLedger) IsPatientSlotOccupied(ctx context.Context, db *gorm.DB, patientID int64, date time.Time, slot string) (bool, error) {
	return l.appointmentRepo.ExistsActiveForPatient(ctx, db, patientID, date, slot)
}

// OccupiedTimes returns the set of canonical times the doctor already has
// booked on date.
func (l *ConflictLedger) OccupiedTimes(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time) (map[string]struct{}, error) {
	times, err := l.appointmentRepo.FindActiveTimesByDoctorAndDate(ctx, db, doctorID, date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{}, len(times))
	for _, t := range times {
		occupied[t] = struct{}{}
	}
	return occupied, nil
}
