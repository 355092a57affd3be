package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"appointment-scheduler/internal/delivery/dto"
	"appointment-scheduler/internal/scheduling"
	"appointment-scheduler/internal/service"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/pkg/response"
	"appointment-scheduler/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentUsecase struct {
	autoBook     *dto.AutoBookResponse
	booked       *dto.AppointmentResponse
	appointments *dto.AppointmentListResponse
	err          error
	lastEmail    string
}

func (f *fakeAppointmentUsecase) AutoBook(ctx context.Context, req *dto.AutoBookRequest) (*dto.AutoBookResponse, error) {
	return f.autoBook, f.err
}

func (f *fakeAppointmentUsecase) BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error) {
	return f.booked, f.err
}

func (f *fakeAppointmentUsecase) GetPatientAppointments(ctx context.Context, patientEmail string) (*dto.AppointmentListResponse, error) {
	f.lastEmail = patientEmail
	return f.appointments, f.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

const validBookSlot = `{"patient_email":"jane@example.com","doctor_id":3,"appointment_date":"2026-10-20","appointment_time":"09:00"}`

func TestBookSlot_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"booked", nil, http.StatusCreated, "Appointment booked successfully"},
		{"doctor slot taken", service.ErrDoctorSlotTaken, http.StatusConflict, "This slot is already booked."},
		{"patient slot taken", service.ErrPatientSlotTaken, http.StatusConflict, "You already have an appointment at this time."},
		{"held", service.ErrSlotHeld, http.StatusConflict, "This slot is being booked right now, please pick another one."},
		{"patient missing", usecase.ErrPatientNotFound, http.StatusNotFound, "Patient not found"},
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound, "Doctor not found"},
		{"today", usecase.ErrDateNotBookable, http.StatusBadRequest, "Appointments can only be booked from tomorrow onwards"},
		{"bad time", fmt.Errorf("%w: %q", scheduling.ErrInvalidTimeFormat, "noon"), http.StatusBadRequest, "Invalid time format, use HH:MM or H:MM AM/PM"},
		{"not offered", usecase.ErrSlotNotOffered, http.StatusBadRequest, "The doctor does not offer this slot on that date"},
		{"database", fmt.Errorf("%w: boom", service.ErrDatabase), http.StatusInternalServerError, "Failed to book appointment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeAppointmentUsecase{err: tt.err, booked: &dto.AppointmentResponse{AppointmentID: 1}}
			h := NewAppointmentHandler(uc, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.BookSlot(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBookSlot)))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.err == nil, body.Success)
		})
	}
}

func TestBookSlot_InvalidPayload(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.BookSlot(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.BookSlot(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"patient_email":"jane"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	errs, ok := body.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "doctor_id")
	assert.Contains(t, errs, "patient_email")
}

func TestAutoBook_ExhaustedIsOK(t *testing.T) {
	uc := &fakeAppointmentUsecase{autoBook: &dto.AutoBookResponse{Status: "exhausted", Message: "No available slots"}}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.AutoBook(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/auto-book",
		strings.NewReader(`{"patient_email":"jane@example.com","recommended_specialists":["Cardiologist"]}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "exhausted", data["status"])
	assert.NotContains(t, data, "appointment")
}

func TestAutoBook_RequiresSpecialists(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.AutoBook(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/auto-book",
		strings.NewReader(`{"patient_email":"jane@example.com","recommended_specialists":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPatientAppointments(t *testing.T) {
	uc := &fakeAppointmentUsecase{appointments: &dto.AppointmentListResponse{Total: 0, Appointments: []dto.AppointmentResponse{}}}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetPatientAppointments(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?patient_email=jane%40example.com", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@example.com", uc.lastEmail)

	rec = httptest.NewRecorder()
	h.GetPatientAppointments(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
