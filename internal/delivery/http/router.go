package http

import (
	"net/http"

	"appointment-scheduler/internal/delivery/http/handler"
	"appointment-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	requestMiddleware  *middleware.RequestMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	gatherer           prometheus.Gatherer
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	requestMiddleware *middleware.RequestMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	gatherer prometheus.Gatherer,
) *Router {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		requestMiddleware:  requestMiddleware,
		corsMiddleware:     corsMiddleware,
		gatherer:           gatherer,
	}
}

// Setup registers the routes. CORS wraps the whole router so preflight
// requests are answered before mux method matching.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Appointment booking
	api.HandleFunc("/appointments/auto-book", r.appointmentHandler.AutoBook).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.BookSlot).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetPatientAppointments).Methods(http.MethodGet)

	// Doctor picker and slot listing
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}/slots", r.doctorHandler.GetAvailableSlots).Methods(http.MethodGet)

	r.router.Use(r.requestMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
