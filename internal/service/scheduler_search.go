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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SearchStatus string

const (
	SearchStatusBooked    SearchStatus = "booked"
	SearchStatusExhausted SearchStatus = "exhausted"
)

// SearchResult is the terminal state of an auto-booking search. Booked is
// nil when Status is SearchStatusExhausted.
type SearchResult struct {
	Status SearchStatus
	Booked *Booked
}

// Reserver commits one slot. Implemented by ReservationService.
type Reserver interface {
	Reserve(ctx context.Context, req ReserveRequest) (*Booked, error)
}

// SchedulerSearch walks specialist → doctor → availability window and books
// the first free candidate.
type SchedulerSearch struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	ledger      *ConflictLedger
	reserver    Reserver
	metrics     *metrics.SchedulerMetrics
	horizonDays int
	now         func() time.Time
}

func NewSchedulerSearch(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	ledger *ConflictLedger,
	reserver Reserver,
	schedulerMetrics *metrics.SchedulerMetrics,
	horizonDays int,
	now func() time.Time,
) *SchedulerSearch {
	if now == nil {
		now = time.Now
	}
	return &SchedulerSearch{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		ledger:      ledger,
		reserver:    reserver,
		metrics:     schedulerMetrics,
		horizonDays: horizonDays,
		now:         now,
	}
}

// FindAndReserve books the first free slot in specialist order, then doctor
// pool order, then window order. Exhaustion is a result, not an error; only
// ErrDatabase-wrapped failures are returned.
func (s *SchedulerSearch) FindAndReserve(ctx context.Context, patientID int64, specialists []string) (*SearchResult, error) {
	started := time.Now()
	log := requestid.Entry(ctx, s.log)

	doctors, err := s.doctorRepo.FindAll(ctx, s.db, nil)
	if err != nil {
		log.Warnf("Failed to load doctors: %+v", err)
		return nil, fmt.Errorf("%w: load doctors: %w", ErrDatabase, err)
	}

	today := scheduling.DateOf(s.now())
	parsed := make(map[int64]*scheduling.Availability, len(doctors))
	unusable := make(map[int64]bool)

	for _, group := range scheduling.MatchSpecialists(specialists, doctors) {
		if len(group.Doctors) == 0 {
			log.WithField("specialist", group.Specialist).Info("No doctors match specialist")
			continue
		}

		for _, doctor := range group.Doctors {
			if unusable[doctor.ID] {
				continue
			}
			availability, ok := parsed[doctor.ID]
			if !ok {
				availability, err = scheduling.NewAvailability(doctor)
				if err != nil {
					unusable[doctor.ID] = true
					s.metrics.ObserveDoctorSkipped()
					log.WithFields(logrus.Fields{
						"doctor_id":  doctor.ID,
						"specialist": group.Specialist,
					}).Warnf("Skipping doctor with unusable availability: %v", err)
					continue
				}
				parsed[doctor.ID] = availability
				for _, entry := range availability.Skipped {
					log.WithField("doctor_id", doctor.ID).Warnf("Ignoring malformed slot %q", entry)
				}
			}

			booked, err := s.tryDoctor(ctx, patientID, doctor, availability, today)
			if err != nil {
				s.metrics.ObserveSearch("error", time.Since(started))
				return nil, err
			}
			if booked != nil {
				s.metrics.ObserveSearch(string(SearchStatusBooked), time.Since(started))
				return &SearchResult{Status: SearchStatusBooked, Booked: booked}, nil
			}
		}
	}

	s.metrics.ObserveSearch(string(SearchStatusExhausted), time.Since(started))
	log.WithField("patient_id", patientID).Info("No free slot found within the search horizon")
	return &SearchResult{Status: SearchStatusExhausted}, nil
}

// tryDoctor returns (nil, nil) when every candidate of the doctor is taken.
func (s *SchedulerSearch) tryDoctor(ctx context.Context, patientID int64, doctor entity.Doctor, availability *scheduling.Availability, today time.Time) (*Booked, error) {
	for candidate := range availability.Window(today, s.horizonDays) {
		free, err := s.isFree(ctx, patientID, doctor.ID, candidate)
		if err != nil {
			requestid.Entry(ctx, s.log).Warnf("Failed to check occupancy for doctor %d: %+v", doctor.ID, err)
			return nil, fmt.Errorf("%w: check occupancy: %w", ErrDatabase, err)
		}
		if !free {
			continue
		}

		booked, err := s.reserver.Reserve(ctx, ReserveRequest{
			PatientID:  patientID,
			DoctorID:   doctor.ID,
			DoctorName: doctor.FullName,
			Date:       candidate.Date,
			Time:       candidate.Time,
			Source:     SourceAutoBook,
		})
		if err == nil {
			return booked, nil
		}
		if errors.Is(err, ErrSlotConflict) {
			requestid.Entry(ctx, s.log).WithFields(logrus.Fields{
				"doctor_id": doctor.ID,
				"date":      candidate.Date.Format("2006-01-02"),
				"time":      candidate.Time,
			}).Debugf("Slot lost to a concurrent booking: %v", err)
			continue
		}
		return nil, err
	}
	return nil, nil
}

func (s *SchedulerSearch) isFree(ctx context.Context, patientID, doctorID int64, candidate scheduling.Candidate) (bool, error) {
	taken, err := s.ledger.IsDoctorSlotOccupied(ctx, s.db, doctorID, candidate.Date, candidate.Time)
	if err != nil || taken {
		return false, err
	}
	taken, err = s.ledger.IsPatientSlotOccupied(ctx, s.db, patientID, candidate.Date, candidate.Time)
	if err != nil || taken {
		return false, err
	}
	return true, nil
}
