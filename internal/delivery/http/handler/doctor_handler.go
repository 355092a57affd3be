package handler

import (
	"net/http"
	"strconv"

	"appointment-scheduler/internal/domain/entity"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/pkg/response"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
}

func NewDoctorHandler(scheduleUsecase usecase.DoctorScheduleUsecase) *DoctorHandler {
	return &DoctorHandler{
		scheduleUsecase: scheduleUsecase,
	}
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	filter := &entity.DoctorFilter{
		Specialization: r.URL.Query().Get("specialization"),
	}

	doctors, err := h.scheduleUsecase.ListDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || doctorID < 1 {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.ValidationError(w, map[string]string{"date": "date is required"})
		return
	}

	slots, err := h.scheduleUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		writeSchedulingError(w, err, "Failed to get available slots")
		return
	}

	message := "Available slots retrieved successfully"
	if !slots.Available {
		message = "Doctor is not available on this day"
	}
	response.Success(w, http.StatusOK, message, slots)
}
