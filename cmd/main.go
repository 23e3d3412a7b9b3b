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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_user_bookings"
	getWorkerScheduleHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_worker_schedule"
	processPaymentHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/process_payment"
	unblockSlotHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/unblock_slot"
	updateBookingStatusHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	invoicerClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/invoicer"
	notifierClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	blockSlotUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/block_slot"
	createBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
	processPaymentUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/process_payment"
	updateBookingStatusUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-MarketplaceService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting SMC-MarketplaceService...")
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

	// Инициализируем интеграционных клиентов
	notify := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	invoice := invoicerClient.NewClient(
		cfg.Invoicer.URL,
		time.Duration(cfg.Invoicer.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Notifier=%s timeout=%ds, Invoicer=%s timeout=%ds)",
		cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Invoicer.URL, cfg.Invoicer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		slotRepository    *availabilityRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		bookingRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		notify,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		txMgr,
		notify,
		invoice,
		log,
	)
	processPaymentUseCase := processPaymentUC.NewUseCase(
		bookingRepository,
		txMgr,
		notify,
		log,
	)
	blockSlotUseCase := blockSlotUC.NewUseCase(availabilitySvc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateBookingStatusUseCase, log)
	processPayment := processPaymentHandler.NewHandler(processPaymentUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	blockSlot := blockSlotHandler.NewHandler(blockSlotUseCase, log)
	unblockSlot := unblockSlotHandler.NewHandler(blockSlotUseCase, log)
	getWorkerSchedule := getWorkerScheduleHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты мастера на дату
	api.HandleFunc("/workers/{workerId}/free-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности интервала
	api.HandleFunc("/workers/{workerId}/availability/check", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", processPayment.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Расписание мастера ---
	protected.HandleFunc("/workers/{workerId}/availability", blockSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workers/{workerId}/availability/{slotId}", unblockSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/workers/{workerId}/availability", getWorkerSchedule.Handle).Methods(http.MethodGet)

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
