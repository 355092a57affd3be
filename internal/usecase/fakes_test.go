package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"appointment-scheduler/internal/domain/entity"
	"appointment-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 2026-10-19 is a Monday.
var mondayNoon = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return mondayNoon }

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakePatientRepo struct {
	patients []entity.Patient
	err      error
}

func (f *fakePatientRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.patients {
		if strings.EqualFold(f.patients[i].Email, strings.TrimSpace(email)) {
			return &f.patients[i], nil
		}
	}
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors    []entity.Doctor
	err        error
	lastFilter *entity.DoctorFilter
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
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.doctors, nil
}

type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	err          error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	f.appointments = append(f.appointments, *appointment)
	return f.err
}

func (f *fakeAppointmentRepo) ExistsActiveForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, slot string) (bool, error) {
	times, err := f.FindActiveTimesByDoctorAndDate(ctx, db, doctorID, date)
	for _, t := range times {
		if t == slot {
			return true, err
		}
	}
	return false, err
}

func (f *fakeAppointmentRepo) ExistsActiveForPatient(ctx context.Context, db *gorm.DB, patientID int64, date time.Time, slot string) (bool, error) {
	return false, f.err
}

func (f *fakeAppointmentRepo) FindActiveTimesByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var times []string
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate.Format(dateLayout) == date.Format(dateLayout) {
			times = append(times, a.AppointmentTime)
		}
	}
	return times, nil
}

func (f *fakeAppointmentRepo) FindActiveByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSearcher struct {
	result      *service.SearchResult
	err         error
	patientID   int64
	specialists []string
}

func (f *fakeSearcher) FindAndReserve(ctx context.Context, patientID int64, specialists []string) (*service.SearchResult, error) {
	f.patientID = patientID
	f.specialists = specialists
	return f.result, f.err
}

type fakeReserver struct {
	err      error
	requests []service.ReserveRequest
}

func (f *fakeReserver) Reserve(ctx context.Context, req service.ReserveRequest) (*service.Booked, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &service.Booked{
		AppointmentID: int64(len(f.requests)),
		DoctorID:      req.DoctorID,
		DoctorName:    req.DoctorName,
		PatientID:     req.PatientID,
		Date:          req.Date,
		Time:          req.Time,
	}, nil
}

func cardiologist() entity.Doctor {
	return entity.Doctor{
		ID:             3,
		FullName:       "Dr. Meredith Grey",
		Specialization: "Cardiologist",
		AvailableDays:  "Mon-Wed",
		AvailableSlots: datatypes.JSON(`["14:00", "9:00 AM", "10:30"]`),
	}
}

func jane() entity.Patient {
	return entity.Patient{ID: 10, FullName: "Jane Doe", Email: "jane@example.com"}
}
