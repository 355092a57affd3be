package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointment-scheduler/internal/domain/entity"
	"appointment-scheduler/internal/domain/repository"
	"appointment-scheduler/internal/infrastructure/metrics"
	"appointment-scheduler/internal/scheduling"
	"appointment-scheduler/pkg/requestid"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrSlotConflict means the doctor-slot or the patient-slot is already taken.
	// Callers in the search path move on to the next candidate.
	ErrSlotConflict = errors.New("slot conflict")
	// ErrDatabase is fatal for the current request and is never retried.
	ErrDatabase = errors.New("database error")

	ErrDoctorSlotTaken  = fmt.Errorf("%w: this slot is already booked", ErrSlotConflict)
	ErrPatientSlotTaken = fmt.Errorf("%w: you already have an appointment at this time", ErrSlotConflict)
)

const uniqueViolationCode = "23505"

// Reservation sources, used as a metrics label.
const (
	SourceAutoBook    = "auto"
	SourceInteractive = "interactive"
)

// ReserveRequest names one concrete slot for one patient.
type ReserveRequest struct {
	PatientID  int64
	DoctorID   int64
	DoctorName string
	Date       time.Time
	Time       string // canonical HH:MM:SS
	Source     string
}

// Booked is the confirmation of a committed reservation.
type Booked struct {
	AppointmentID int64
	DoctorID      int64
	DoctorName    string
	PatientID     int64
	Date          time.Time
	Time          string
}

// ReservationService is the only writer of appointments.
type ReservationService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	ledger          *ConflictLedger
	holds           *SlotHoldService
	metrics         *metrics.SchedulerMetrics
	txTimeout       time.Duration
}

func NewReservationService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	ledger *ConflictLedger,
	holds *SlotHoldService,
	schedulerMetrics *metrics.SchedulerMetrics,
	txTimeout time.Duration,
) *ReservationService {
	return &ReservationService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		ledger:          ledger,
		holds:           holds,
		metrics:         schedulerMetrics,
		txTimeout:       txTimeout,
	}
}

// Reserve books the slot or fails with ErrSlotConflict or ErrDatabase.
//
// Flow:
// 1. Advisory Redis hold on the doctor-slot (skipped when Redis is off)
// 2. Transaction bounded by txTimeout: re-check doctor-slot, re-check
//    patient-slot, insert the active appointment
// 3. A unique violation on the partial indexes is reported as a conflict
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*Booked, error) {
	date := scheduling.DateOf(req.Date)

	hold, err := s.holds.Acquire(ctx, req.DoctorID, date, req.Time)
	if err != nil {
		s.metrics.ObserveReservation(req.Source, metrics.OutcomeHeld)
		return nil, err
	}
	defer s.holds.Release(context.WithoutCancel(ctx), hold)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: req.Time,
		Status:          entity.AppointmentStatusActive,
	}

	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.ledger.IsDoctorSlotOccupied(txCtx, tx, req.DoctorID, date, req.Time)
		if err != nil {
			return err
		}
		if taken {
			return ErrDoctorSlotTaken
		}

		taken, err = s.ledger.IsPatientSlotOccupied(txCtx, tx, req.PatientID, date, req.Time)
		if err != nil {
			return err
		}
		if taken {
			return ErrPatientSlotTaken
		}

		return s.appointmentRepo.Create(txCtx, tx, appointment)
	})
	if err != nil {
		return nil, s.classify(ctx, req, date, err)
	}

	s.metrics.ObserveReservation(req.Source, metrics.OutcomeBooked)
	requestid.Entry(ctx, s.log).WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      req.DoctorID,
		"patient_id":     req.PatientID,
		"date":           date.Format("2006-01-02"),
		"time":           req.Time,
		"source":         req.Source,
	}).Info("Appointment booked")

	return &Booked{
		AppointmentID: appointment.ID,
		DoctorID:      req.DoctorID,
		DoctorName:    req.DoctorName,
		PatientID:     req.PatientID,
		Date:          date,
		Time:          req.Time,
	}, nil
}

func (s *ReservationService) classify(ctx context.Context, req ReserveRequest, date time.Time, err error) error {
	if errors.Is(err, ErrSlotConflict) {
		s.metrics.ObserveReservation(req.Source, metrics.OutcomeConflict)
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		s.metrics.ObserveReservation(req.Source, metrics.OutcomeConflict)
		if pgErr.ConstraintName == entity.PatientSlotConstraint {
			return ErrPatientSlotTaken
		}
		return ErrDoctorSlotTaken
	}

	s.metrics.ObserveReservation(req.Source, metrics.OutcomeError)
	requestid.Entry(ctx, s.log).Errorf("Failed to reserve doctor %d at %s %s: %+v", req.DoctorID, date.Format("2006-01-02"), req.Time, err)
	return fmt.Errorf("%w: reserve slot: %w", ErrDatabase, err)
}
