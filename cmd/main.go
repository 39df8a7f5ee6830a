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

	addOptionHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/add_option"
	cancelBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_booking"
	getCurrentBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_current_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/config"
	"github.com/m04kA/SMC-CoworkingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	coworkingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/coworking"
	userServiceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-CoworkingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CoworkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingService/pkg/logger"
	"github.com/m04kA/SMC-CoworkingService/pkg/metrics"
	"github.com/m04kA/SMC-CoworkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CoworkingService/pkg/txmanager"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
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

	log.Info("Starting SMC-CoworkingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Конвертер клиентского часового пояса
	offset := tz.DefaultOffsetHours
	if cfg.Timezone.ClientOffsetHours != nil {
		offset = *cfg.Timezone.ClientOffsetHours
	}
	converter := tz.New(offset)
	log.Info("Client timezone offset: UTC%+d", offset)

	// Инициализируем шину событий
	var eventBus events.Bus
	switch cfg.Events.Backend {
	case "rabbitmq":
		eventBus, err = events.NewRabbitMQBus(cfg.Events.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		log.Info("RabbitMQ event bus initialized (url=%s)", cfg.Events.URL)
	default:
		eventBus = events.NewMemoryBus()
		log.Info("In-memory event bus initialized")
	}
	if cfg.Metrics.Enabled {
		eventBus = events.WithMetrics(eventBus, metricsCollector)
	}
	defer eventBus.Close()

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		coworkingRepository *coworkingRepo.Repository
		txMgr               bookingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		coworkingRepository = coworkingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		coworkingRepository = coworkingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис бронирований
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		coworkingRepository,
		userClient,
		eventBus,
		txMgr,
		converter,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		coworkingRepository,
		eventBus,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		coworkingRepository,
		converter,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, bookingSvc, converter, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	addOption := addOptionHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCurrentBooking := getCurrentBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные интервалы места на дату
	api.HandleFunc("/spots/{spotId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Постраничный список всех бронирований (для бизнес-пользователей)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Добавление опции к бронированию
	protected.HandleFunc("/bookings/{bookingId}/options", addOption.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Текущее бронирование места (для бизнес-пользователей)
	protected.HandleFunc("/spots/{spotId}/current-booking", getCurrentBooking.Handle).Methods(http.MethodGet)

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
