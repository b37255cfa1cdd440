package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkDateRangeHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/check_date_range"
	createBookingHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_available_slots"
	getBlockedDatesHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_blocked_dates"
	getBookingHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_customer_bookings"
	getOwnerBookingsHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_owner_bookings"
	getShopAnalyticsHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_shop_analytics"
	getShopBookingsHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/get_shop_bookings"
	updateBookingStatusHandler "github.com/blueclipse/myhustle-booking/internal/api/handlers/update_booking_status"
	"github.com/blueclipse/myhustle-booking/internal/api/middleware"
	"github.com/blueclipse/myhustle-booking/internal/config"
	bookingRepo "github.com/blueclipse/myhustle-booking/internal/infra/storage/booking"
	"github.com/blueclipse/myhustle-booking/internal/integrations/catalogservice"
	bookingsService "github.com/blueclipse/myhustle-booking/internal/service/bookings"
	checkDateRangeUC "github.com/blueclipse/myhustle-booking/internal/usecase/check_date_range"
	createBookingUC "github.com/blueclipse/myhustle-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/blueclipse/myhustle-booking/internal/usecase/get_available_slots"
	getBlockedDatesUC "github.com/blueclipse/myhustle-booking/internal/usecase/get_blocked_dates"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
	"github.com/blueclipse/myhustle-booking/pkg/dbmetrics"
	"github.com/blueclipse/myhustle-booking/pkg/logger"
	"github.com/blueclipse/myhustle-booking/pkg/metrics"
	"github.com/blueclipse/myhustle-booking/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting MyHustle BookingService...")
	log.Info("Configuration loaded from %s", *configPath)

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

	// Обёртка над БД: с метриками пишет длительность запросов и статистику пула
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Клиент сервиса магазинов и услуг
	catalogClient := catalogservice.NewClient(
		cfg.CatalogService.URL,
		cfg.CatalogService.TimeoutDuration(),
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Движок доступности
	engine := availability.New(
		availability.WithLocation(cfg.Location()),
		availability.WithPolicy(cfg.Policy()),
	)
	log.Info("Availability engine initialized (timezone=%s, date_blocking=%v, slot_blocking=%v)",
		cfg.Availability.ReferenceTimezone,
		cfg.Availability.DateBlockingStatuses,
		cfg.Availability.SlotBlockingStatuses)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		engine,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		txMgr,
		engine,
		cfg.Availability.MaxCalendarDays,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogClient,
		engine,
		metricsCollector,
		log,
	)

	getBlockedDatesUseCase := getBlockedDatesUC.NewUseCase(
		bookingRepository,
		catalogClient,
		engine,
		cfg.Availability.MaxCalendarDays,
		log,
	)

	checkDateRangeUseCase := checkDateRangeUC.NewUseCase(
		bookingRepository,
		catalogClient,
		engine,
		cfg.Availability.MaxCalendarDays,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBlockedDates := getBlockedDatesHandler.NewHandler(getBlockedDatesUseCase, log)
	checkDateRange := checkDateRangeHandler.NewHandler(checkDateRangeUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getShopAnalytics := getShopAnalyticsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты на выбранную дату
	api.HandleFunc("/shops/{shopId}/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь недоступных дат
	api.HandleFunc("/shops/{shopId}/services/{serviceId}/blocked-dates",
		getBlockedDates.Handle).Methods(http.MethodGet)

	// Проверка периода для многодневного бронирования
	api.HandleFunc("/shops/{shopId}/services/{serviceId}/date-range",
		checkDateRange.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Для владельцев магазинов ---
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/analytics", getShopAnalytics.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/me/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
