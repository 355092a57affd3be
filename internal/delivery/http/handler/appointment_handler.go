package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"appointment-scheduler/internal/delivery/dto"
	"appointment-scheduler/internal/scheduling"
	"appointment-scheduler/internal/service"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/pkg/response"
	"appointment-scheduler/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) AutoBook(w http.ResponseWriter, r *http.Request) {
	var req dto.AutoBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.AutoBook(r.Context(), &req)
	if err != nil {
		writeSchedulingError(w, err, "Failed to book appointment")
		return
	}

	// exhausted is a normal outcome, reported with 200 and its own status
	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *AppointmentHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookSlot(r.Context(), &req)
	if err != nil {
		writeSchedulingError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetPatientAppointments(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("patient_email"))
	if email == "" {
		response.ValidationError(w, map[string]string{"patient_email": "patient_email is required"})
		return
	}

	appointments, err := h.appointmentUsecase.GetPatientAppointments(r.Context(), email)
	if err != nil {
		writeSchedulingError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// writeSchedulingError maps the engine's error kinds to HTTP statuses:
// validation 400, not found 404, slot conflict 409, everything else 500.
func writeSchedulingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidDate):
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case errors.Is(err, usecase.ErrDateNotBookable):
		response.BadRequest(w, "Appointments can only be booked from tomorrow onwards")
	case errors.Is(err, scheduling.ErrInvalidTimeFormat):
		response.BadRequest(w, "Invalid time format, use HH:MM or H:MM AM/PM")
	case errors.Is(err, usecase.ErrSlotNotOffered):
		response.BadRequest(w, "The doctor does not offer this slot on that date")
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrDoctorSlotTaken):
		response.Conflict(w, "This slot is already booked.")
	case errors.Is(err, service.ErrPatientSlotTaken):
		response.Conflict(w, "You already have an appointment at this time.")
	case errors.Is(err, service.ErrSlotConflict):
		response.Conflict(w, "This slot is being booked right now, please pick another one.")
	default:
		response.InternalServerError(w, fallback)
	}
}
