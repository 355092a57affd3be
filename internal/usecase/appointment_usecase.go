package usecase

import (
	"context"
	"errors"
	"fmt"
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

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidDate     = errors.New("invalid appointment date, use YYYY-MM-DD")
	ErrDateNotBookable = errors.New("appointment date must be after today")
	ErrSlotNotOffered  = errors.New("doctor does not offer this slot on that date")
	ErrPatientNotFound = errors.New("patient not found")
)

const dateLayout = "2006-01-02"

// SlotSearcher runs the auto-booking search. Implemented by service.SchedulerSearch.
type SlotSearcher interface {
	FindAndReserve(ctx context.Context, patientID int64, specialists []string) (*service.SearchResult, error)
}

type AppointmentUsecase interface {
	AutoBook(ctx context.Context, req *dto.AutoBookRequest) (*dto.AutoBookResponse, error)
	BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientEmail string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	searcher        SlotSearcher
	reserver        service.Reserver
	horizonDays     int
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	searcher SlotSearcher,
	reserver service.Reserver,
	horizonDays int,
	now func() time.Time,
) AppointmentUsecase {
	if now == nil {
		now = time.Now
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		searcher:        searcher,
		reserver:        reserver,
		horizonDays:     horizonDays,
		now:             now,
	}
}

// AutoBook books the first free slot for the patient across the ranked
// specialists, starting today.
func (u *appointmentUsecase) AutoBook(ctx context.Context, req *dto.AutoBookRequest) (*dto.AutoBookResponse, error) {
	specialists := make([]string, 0, len(req.RecommendedSpecialists))
	for _, s := range req.RecommendedSpecialists {
		if s = strings.TrimSpace(s); s != "" {
			specialists = append(specialists, s)
		}
	}
	if len(specialists) == 0 {
		return nil, fmt.Errorf("%w: no recommended specialists", ErrValidation)
	}

	patient, err := u.findPatient(ctx, req.PatientEmail)
	if err != nil {
		return nil, err
	}

	result, err := u.searcher.FindAndReserve(ctx, patient.ID, specialists)
	if err != nil {
		return nil, err
	}

	if result.Status == service.SearchStatusExhausted {
		return &dto.AutoBookResponse{
			Status:  string(service.SearchStatusExhausted),
			Message: fmt.Sprintf("No available slots found for the recommended specialists in the next %d days", u.horizonDays),
		}, nil
	}

	specialization := ""
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, result.Booked.DoctorID)
	if err != nil {
		// the appointment is already committed, only the label is missing
		u.log.Warnf("Failed to find doctor %d: %+v", result.Booked.DoctorID, err)
	} else if doctor != nil {
		specialization = doctor.Specialization
	}

	return &dto.AutoBookResponse{
		Status:      string(service.SearchStatusBooked),
		Message:     "Appointment booked successfully",
		Appointment: converter.BookedToResponse(result.Booked, specialization),
	}, nil
}

// BookSlot reserves a caller-chosen slot. The date must be strictly after
// today and the time must be one the doctor offers on that weekday.
func (u *appointmentUsecase) BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error) {
	today := scheduling.DateOf(u.now())

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.AppointmentDate), today.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !date.After(today) {
		return nil, ErrDateNotBookable
	}

	slot, err := scheduling.Normalize(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	patient, err := u.findPatient(ctx, req.PatientEmail)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: find doctor: %w", service.ErrDatabase, err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	availability, err := scheduling.NewAvailability(*doctor)
	if err != nil {
		u.log.Warnf("Doctor %d has unusable availability: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrSlotNotOffered, err)
	}
	if !availability.Offers(date, slot) {
		return nil, ErrSlotNotOffered
	}

	booked, err := u.reserver.Reserve(ctx, service.ReserveRequest{
		PatientID:  patient.ID,
		DoctorID:   doctor.ID,
		DoctorName: doctor.FullName,
		Date:       date,
		Time:       slot,
		Source:     service.SourceInteractive,
	})
	if err != nil {
		return nil, err
	}

	return converter.BookedToResponse(booked, doctor.Specialization), nil
}

// GetPatientAppointments returns the patient's active appointments
func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientEmail string) (*dto.AppointmentListResponse, error) {
	patient, err := u.findPatient(ctx, patientEmail)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patient.ID, err)
		return nil, fmt.Errorf("%w: find appointments: %w", service.ErrDatabase, err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) findPatient(ctx context.Context, email string) (*entity.Patient, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: no patient email", ErrValidation)
	}

	patient, err := u.patientRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", email, err)
		return nil, fmt.Errorf("%w: find patient: %w", service.ErrDatabase, err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
