package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"appointment-scheduler/internal/converter"
	"appointment-scheduler/internal/delivery/dto"
	"appointment-scheduler/internal/domain/entity"
	"appointment-scheduler/internal/domain/repository"
	"appointment-scheduler/internal/scheduling"
	"appointment-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorScheduleUsecase interface {
	ListDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID int64, date string) (*dto.AvailableSlotsResponse, error)
}

type doctorScheduleUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	ledger     *service.ConflictLedger
	now        func() time.Time
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	ledger *service.ConflictLedger,
	now func() time.Time,
) DoctorScheduleUsecase {
	if now == nil {
		now = time.Now
	}
	return &doctorScheduleUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		ledger:     ledger,
		now:        now,
	}
}

func (u *doctorScheduleUsecase) ListDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	if filter != nil {
		filter.Specialization = strings.TrimSpace(filter.Specialization)
	}

	doctors, err := u.doctorRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, fmt.Errorf("%w: find doctors: %w", service.ErrDatabase, err)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetAvailableSlots lists the doctor's free slots on date in chronological
// order. A weekday outside the doctor's pattern is not an error.
func (u *doctorScheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID int64, date string) (*dto.AvailableSlotsResponse, error) {
	today := scheduling.DateOf(u.now())
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), today.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, fmt.Errorf("%w: find doctor: %w", service.ErrDatabase, err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	result := &dto.AvailableSlotsResponse{
		DoctorID: doctor.ID,
		Date:     day.Format(dateLayout),
		Bookable: day.After(today),
		Slots:    []dto.SlotResponse{},
	}

	availability, err := scheduling.NewAvailability(*doctor)
	if err != nil {
		u.log.Warnf("Doctor %d has unusable availability: %v", doctor.ID, err)
		return result, nil
	}

	slots, ok := availability.SlotsOn(day)
	if !ok {
		return result, nil
	}
	result.Available = true

	occupied, err := u.ledger.OccupiedTimes(ctx, u.db, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to load booked times for doctor %d: %+v", doctor.ID, err)
		return nil, fmt.Errorf("%w: occupied times: %w", service.ErrDatabase, err)
	}

	free := slices.DeleteFunc(slots, func(slot string) bool {
		_, taken := occupied[slot]
		return taken
	})
	slices.SortStableFunc(free, func(a, b string) int {
		sa, _ := scheduling.SecondsOfDay(a)
		sb, _ := scheduling.SecondsOfDay(b)
		return sa - sb
	})

	for _, slot := range free {
		result.Slots = append(result.Slots, dto.SlotResponse{
			Time:    slot,
			Display: scheduling.DisplayTime(slot),
		})
	}
	return result, nil
}
