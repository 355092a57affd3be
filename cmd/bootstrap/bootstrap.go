package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-scheduler/config"
	deliveryHttp "appointment-scheduler/internal/delivery/http"
	"appointment-scheduler/internal/delivery/http/handler"
	"appointment-scheduler/internal/delivery/http/middleware"
	"appointment-scheduler/internal/infrastructure/cache"
	"appointment-scheduler/internal/infrastructure/database"
	"appointment-scheduler/internal/infrastructure/metrics"
	"appointment-scheduler/internal/repository"
	"appointment-scheduler/internal/service"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger
}

// Usecases is the scheduling engine wired over one database and an optional
// Redis client. Shared by the HTTP server and schedulerctl.
type Usecases struct {
	Appointment    usecase.AppointmentUsecase
	DoctorSchedule usecase.DoctorScheduleUsecase
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	log := setupLogger()
	app.Log = log

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	applyLogLevel(log, cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	db, redisClient, err := Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.RedisClient = redisClient

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db, database.MigrateUp); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, log)

	return app, nil
}

// Connect opens PostgreSQL and, when enabled, Redis. Redis is only used for
// advisory slot holds, so a failed Redis connection is logged and skipped.
func Connect(cfg *config.Config, log *logrus.Logger) (*gorm.DB, *redis.Client, error) {
	db, err := database.NewPostgresConnection(cfg.DB, cfg.Scheduler.TimezoneName, cfg.App.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warnf("Redis unavailable, continuing without slot holds: %+v", err)
		redisClient = nil
	}

	return db, redisClient, nil
}

// NewUsecases wires repositories, services and usecases. reg may be nil to
// register metrics on the default registry.
func NewUsecases(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, reg prometheus.Registerer) *Usecases {
	now := func() time.Time { return time.Now().In(cfg.Scheduler.Location) }

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	// Initialize services
	schedulerMetrics := metrics.NewSchedulerMetrics(reg)
	ledger := service.NewConflictLedger(appointmentRepo)
	holds := service.NewSlotHoldService(redisClient, log, cfg.Scheduler.SlotHoldTTL)
	reservations := service.NewReservationService(db, log, appointmentRepo, ledger, holds, schedulerMetrics, cfg.Scheduler.TxTimeout)
	search := service.NewSchedulerSearch(db, log, doctorRepo, ledger, reservations, schedulerMetrics, cfg.Scheduler.HorizonDays, now)

	// Initialize usecases
	return &Usecases{
		Appointment:    usecase.NewAppointmentUsecase(db, log, patientRepo, doctorRepo, appointmentRepo, search, reservations, cfg.Scheduler.HorizonDays, now),
		DoctorSchedule: usecase.NewDoctorScheduleUsecase(db, log, doctorRepo, ledger, now),
	}
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	return logrus.StandardLogger()
}

func applyLogLevel(log *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, keeping %s", level, log.GetLevel())
		return
	}
	log.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *http.Server {
	usecases := NewUsecases(cfg, db, redisClient, log, prometheus.DefaultRegisterer)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(usecases.Appointment, customValidator)
	doctorHandler := handler.NewDoctorHandler(usecases.DoctorSchedule)

	// Initialize middleware
	requestMiddleware := middleware.NewRequestMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, doctorHandler, requestMiddleware, corsMiddleware, prometheus.DefaultGatherer)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
