package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-10-19 is a Monday.
var mondayMorning = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testDoctor(id int64, specialization, days, slots string) entity.Doctor {
	return entity.Doctor{
		ID:             id,
		FullName:       "Dr. " + specialization,
		Specialization: specialization,
		AvailableDays:  days,
		AvailableSlots: datatypes.JSON(slots),
	}
}

// fakeAppointmentStore behaves like the appointments table with its two
// partial unique indexes. The *gorm.DB argument is ignored.
type fakeAppointmentStore struct {
	mu           sync.Mutex
	nextID       int64
	appointments []entity.Appointment
	err          error
	existsCalls  int
}

func (f *fakeAppointmentStore) seed(doctorID, patientID int64, date time.Time, slot string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.appointments = append(f.appointments, entity.Appointment{
		ID:              f.nextID,
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentDate: date,
		AppointmentTime: slot,
		Status:          entity.AppointmentStatusActive,
	})
}

func (f *fakeAppointmentStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (f *fakeAppointmentStore) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}

	for _, a := range f.appointments {
		if !a.IsActive() || !sameDay(a.AppointmentDate, appointment.AppointmentDate) || a.AppointmentTime != appointment.AppointmentTime {
			continue
		}
		if a.DoctorID == appointment.DoctorID {
			return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: entity.DoctorSlotConstraint}
		}
		if a.PatientID == appointment.PatientID {
			return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: entity.PatientSlotConstraint}
		}
	}

	f.nextID++
	appointment.ID = f.nextID
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentStore) exists(match func(entity.Appointment) bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++
	if f.err != nil {
		return false, f.err
	}
	for _, a := range f.appointments {
		if a.IsActive() && match(a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentStore) ExistsActiveForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, slot string) (bool, error) {
	return f.exists(func(a entity.Appointment) bool {
		return a.DoctorID == doctorID && sameDay(a.AppointmentDate, date) && a.AppointmentTime == slot
	})
}

func (f *fakeAppointmentStore) ExistsActiveForPatient(ctx context.Context, db *gorm.DB, patientID int64, date time.Time, slot string) (bool, error) {
	return f.exists(func(a entity.Appointment) bool {
		return a.PatientID == patientID && sameDay(a.AppointmentDate, date) && a.AppointmentTime == slot
	})
}

func (f *fakeAppointmentStore) FindActiveTimesByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var times []string
	for _, a := range f.appointments {
		if a.IsActive() && a.DoctorID == doctorID && sameDay(a.AppointmentDate, date) {
			times = append(times, a.AppointmentTime)
		}
	}
	return times, nil
}

func (f *fakeAppointmentStore) FindActiveByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.IsActive() && a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors []entity.Doctor
	err     error
}

func (f *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doctors, nil
}

// storeReserver books straight into the fake store. With dryRun it only
// records what it would have booked.
type storeReserver struct {
	store    *fakeAppointmentStore
	dryRun   bool
	loseNext int
	requests []ReserveRequest
}

func (r *storeReserver) Reserve(ctx context.Context, req ReserveRequest) (*Booked, error) {
	r.requests = append(r.requests, req)
	if r.loseNext > 0 {
		r.loseNext--
		return nil, ErrDoctorSlotTaken
	}

	booked := &Booked{DoctorID: req.DoctorID, DoctorName: req.DoctorName, PatientID: req.PatientID, Date: req.Date, Time: req.Time}
	if r.dryRun {
		return booked, nil
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		Status:          entity.AppointmentStatusActive,
	}
	if err := r.store.Create(ctx, nil, appointment); err != nil {
		return nil, ErrDoctorSlotTaken
	}
	booked.AppointmentID = appointment.ID
	return booked, nil
}
