package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_appointment"
	getClinicHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_clinic"
	getClinicsHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_clinics"
	getDoctorHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_doctor"
	getDoctorAppointmentsHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_doctor_appointments"
	getDoctorSlotsHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_doctor_slots"
	getDoctorsHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_doctors"
	getPatientAppointmentsHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/get_patient_appointments"
	updateAppointmentHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/update_appointment"
	updateDoctorAvailabilityHandler "github.com/abhinavxdd/MediQueue/internal/api/handlers/update_doctor_availability"
	"github.com/abhinavxdd/MediQueue/internal/api/middleware"
	"github.com/abhinavxdd/MediQueue/internal/config"
	appointmentRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/appointment"
	clinicRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/clinic"
	doctorRepo "github.com/abhinavxdd/MediQueue/internal/infra/storage/doctor"
	appointmentsService "github.com/abhinavxdd/MediQueue/internal/service/appointments"
	clinicsService "github.com/abhinavxdd/MediQueue/internal/service/clinics"
	doctorsService "github.com/abhinavxdd/MediQueue/internal/service/doctors"
	createAppointmentUC "github.com/abhinavxdd/MediQueue/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/abhinavxdd/MediQueue/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/abhinavxdd/MediQueue/internal/usecase/reschedule_appointment"
	"github.com/abhinavxdd/MediQueue/pkg/dbmetrics"
	"github.com/abhinavxdd/MediQueue/pkg/logger"
	"github.com/abhinavxdd/MediQueue/pkg/metrics"
	"github.com/abhinavxdd/MediQueue/pkg/simpletxmanager"
	"github.com/abhinavxdd/MediQueue/pkg/txmanager"
)

// TxManager объединяет транзакционные режимы, нужные сервисам и use cases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// .env опционален, в проде переменные приходят из окружения
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MediQueue booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		doctorRepository      *doctorRepo.Repository
		clinicRepository      *clinicRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		doctorRepository = doctorRepo.NewRepository(wrappedDB)
		clinicRepository = clinicRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		doctorRepository = doctorRepo.NewRepository(db)
		clinicRepository = clinicRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	doctorSvc := doctorsService.NewService(doctorRepository, txMgr, log)
	clinicSvc := clinicsService.NewService(clinicRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		doctorRepository,
		appointmentRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		clinicRepository,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getDoctorSlots := getDoctorSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDoctors := getDoctorsHandler.NewHandler(doctorSvc, log)
	getDoctor := getDoctorHandler.NewHandler(doctorSvc, log)
	updateDoctorAvailability := updateDoctorAvailabilityHandler.NewHandler(doctorSvc, log)
	getClinics := getClinicsHandler.NewHandler(clinicSvc, log)
	getClinic := getClinicHandler.NewHandler(clinicSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог клиник
	api.HandleFunc("/clinics", getClinics.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{clinicId}", getClinic.Handle).Methods(http.MethodGet)

	// Каталог врачей
	api.HandleFunc("/doctors", getDoctors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}", getDoctor.Handle).Methods(http.MethodGet)

	// Доступные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/slots/{date}", getDoctorSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Приёмы ---
	// Запись на приём
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// История приёмов пациента (пациент определяется токеном)
	protected.HandleFunc("/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// Приёмы врача (врач определяется токеном).
	// Литеральный маршрут регистрируется раньше /{appointmentId}
	protected.HandleFunc("/appointments/doctor", getDoctorAppointments.Handle).Methods(http.MethodGet)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос приёма / изменение причины обращения
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

	// Отмена приёма
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPut)

	// Завершение приёма врачом
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPut)

	// --- Управление расписанием ---
	// Замена недельного шаблона доступности врача
	protected.HandleFunc("/doctors/{doctorId}/availability", updateDoctorAvailability.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
