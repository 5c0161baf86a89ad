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
	"github.com/redis/go-redis/v9"

	addAvailabilitySlotHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/add_availability_slot"
	cancelBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/check_slot"
	completeBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/decline_booking"
	getBookingHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/get_client_bookings"
	getTrainerBookingsHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/get_trainer_bookings"
	listAvailabilityHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/list_availability"
	markNoShowHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/mark_no_show"
	removeAvailabilitySlotHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/remove_availability_slot"
	searchTrainersHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/search_trainers"
	toggleAvailabilitySlotHandler "github.com/m04kA/FitMarket-BookingService/internal/api/handlers/toggle_availability_slot"
	"github.com/m04kA/FitMarket-BookingService/internal/api/middleware"
	"github.com/m04kA/FitMarket-BookingService/internal/config"
	"github.com/m04kA/FitMarket-BookingService/internal/infra/migrate"
	availabilityRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/booking"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	geocoderClient "github.com/m04kA/FitMarket-BookingService/internal/integrations/geocoder"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/identity"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/notifier"
	paymentsClient "github.com/m04kA/FitMarket-BookingService/internal/integrations/payments"
	availabilityService "github.com/m04kA/FitMarket-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/FitMarket-BookingService/internal/service/bookings"
	checkSlotUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/create_booking"
	searchTrainersUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/search_trainers"
	"github.com/m04kA/FitMarket-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FitMarket-BookingService/pkg/logger"
	"github.com/m04kA/FitMarket-BookingService/pkg/metrics"
	"github.com/m04kA/FitMarket-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FitMarket-BookingService/pkg/txmanager"
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

	log.Info("Starting FitMarket-BookingService...")
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

	// Применяем миграции (если включены)
	if cfg.Migrations.Auto {
		migrator, err := migrate.NewMigrator(db, cfg.Migrations.Dir, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Redis-кэш геокодера (опционально)
	var geocodeCache *redis.Client
	if cfg.Geocoder.CacheAddr != "" {
		geocodeCache = redis.NewClient(&redis.Options{Addr: cfg.Geocoder.CacheAddr})
		if err := geocodeCache.Ping(context.Background()).Err(); err != nil {
			log.Warn("Geocoder cache unavailable at %s, proceeding without cache: %v",
				cfg.Geocoder.CacheAddr, err)
			geocodeCache = nil
		} else {
			log.Info("Geocoder cache connected at %s", cfg.Geocoder.CacheAddr)
			defer geocodeCache.Close()
		}
	}

	// Инициализируем интеграционных клиентов
	geocoder := geocoderClient.NewClient(
		cfg.Geocoder.URL,
		time.Duration(cfg.Geocoder.Timeout)*time.Second,
		geocodeCache,
		time.Duration(cfg.Geocoder.CacheTTLDays)*24*time.Hour,
		log,
	)
	identityClient := identity.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	bookingNotifier := notifier.New(
		cfg.Notifier.APIKey,
		cfg.Notifier.FromEmail,
		cfg.Notifier.FromName,
		cfg.Notifier.Enabled,
		identityClient,
		log,
	)
	payments := paymentsClient.New(
		cfg.Payments.APIKey,
		cfg.Payments.Currency,
		cfg.Payments.Enabled,
		log,
	)
	log.Info("Integration clients initialized (geocoder=%s, notifier enabled=%t, payments enabled=%t)",
		cfg.Geocoder.URL, cfg.Notifier.Enabled, cfg.Payments.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		trainerRepository      *trainerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		trainerRepository = trainerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		trainerRepository = trainerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		trainerRepository,
		bookingNotifier,
		payments,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		trainerRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		trainerRepository,
		txMgr,
		payments,
		bookingNotifier,
		log,
	)
	checkSlotUseCase := checkSlotUC.NewUseCase(
		trainerRepository,
		availabilityRepository,
		bookingRepository,
		log,
	)
	searchTrainersUseCase := searchTrainersUC.NewUseCase(
		trainerRepository,
		geocoder,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getTrainerBookings := getTrainerBookingsHandler.NewHandler(bookingSvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	addAvailabilitySlot := addAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	toggleAvailabilitySlot := toggleAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	removeAvailabilitySlot := removeAvailabilitySlotHandler.NewHandler(availabilitySvc, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	searchTrainers := searchTrainersHandler.NewHandler(searchTrainersUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск тренеров
	api.HandleFunc("/trainers/search", searchTrainers.Handle).Methods(http.MethodGet)

	// Расписание доступности тренера
	api.HandleFunc("/trainers/{trainerId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Проверка доступности слота
	api.HandleFunc("/trainers/{trainerId}/check-slot", checkSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание доступности (для тренеров) ---
	protected.HandleFunc("/trainers/availability", addAvailabilitySlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/trainers/availability/{slotId}", toggleAvailabilitySlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/trainers/availability/{slotId}", removeAvailabilitySlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// --- История и расписание ---
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/trainers/{trainerId}/bookings", getTrainerBookings.Handle).Methods(http.MethodGet)

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
