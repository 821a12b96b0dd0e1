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

	cancelBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/confirm_booking"
	createBlockedTimeHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_blocked_time"
	createBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_booking"
	deleteBlockedTimeHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/delete_blocked_time"
	getAvailableSlotsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_available_slots"
	getBlockedTimesHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_blocked_times"
	getBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_customer_bookings"
	quoteDiscountHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/quote_discount"
	reconcileDiscountHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/reconcile_discount"
	unblockDateHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/unblock_date"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/app"
	"github.com/m04kA/SalonBookingService/internal/config"
	adminRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/admin"
	blockedTimeRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blockedtime"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/customer"
	discountRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/discount"
	treatmentRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/treatment"
	mailerClient "github.com/m04kA/SalonBookingService/internal/integrations/mailer"
	blockedTimeService "github.com/m04kA/SalonBookingService/internal/service/blockedtime"
	bookingsService "github.com/m04kA/SalonBookingService/internal/service/bookings"
	discountsService "github.com/m04kA/SalonBookingService/internal/service/discounts"
	createBookingUC "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/logger"
	"github.com/m04kA/SalonBookingService/pkg/metrics"
	"github.com/m04kA/SalonBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SalonBookingService/pkg/txmanager"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	schedule, err := cfg.Booking.WeekSchedule()
	if err != nil {
		log.Fatal("Invalid working hours config: %v", err)
	}

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Инициализируем репозитории и менеджер транзакций
	// (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		blockedTimeRepository *blockedTimeRepo.Repository
		customerRepository    *customerRepo.Repository
		discountRepository    *discountRepo.Repository
		treatmentRepository   *treatmentRepo.Repository
		adminRepository       *adminRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockedTimeRepository = blockedTimeRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		discountRepository = discountRepo.NewRepository(wrappedDB)
		treatmentRepository = treatmentRepo.NewRepository(wrappedDB)
		adminRepository = adminRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		blockedTimeRepository = blockedTimeRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		discountRepository = discountRepo.NewRepository(db)
		treatmentRepository = treatmentRepo.NewRepository(db)
		adminRepository = adminRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Клиент внешнего сервиса уведомлений (опционален)
	var mailer bookingsService.MailerClient
	if cfg.Mailer.Enabled {
		mailer = mailerClient.NewClient(
			cfg.Mailer.URL,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	}

	// Инициализируем сервисы
	discountSvc := discountsService.NewService(
		discountRepository,
		bookingRepository,
		customerRepository,
		discountsService.RealTimeProvider{},
		discountsService.Config{
			LoyaltyThreshold:   cfg.Discounts.LoyaltyThreshold,
			LoyaltyPercentage:  cfg.Discounts.LoyaltyPercentage,
			BirthdayPercentage: cfg.Discounts.BirthdayPercentage,
			BirthdayWindowDays: cfg.Discounts.BirthdayWindowDays,
		},
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		discountSvc,
		mailer,
		txMgr,
		log,
	)

	blockedTimeSvc := blockedTimeService.NewService(
		blockedTimeRepository,
		txMgr,
		blockedTimeService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockedTimeRepository,
		treatmentRepository,
		txMgr,
		createBookingUC.Config{
			Schedule:      schedule,
			BufferMinutes: cfg.Booking.BufferMinutes,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		blockedTimeRepository,
		treatmentRepository,
		getAvailableSlotsUC.Config{
			Schedule:      schedule,
			GridMinutes:   cfg.Booking.SlotGridMinutes,
			BufferMinutes: cfg.Booking.BufferMinutes,
			AllowDegraded: cfg.Booking.AllowDegradedAvailability,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	quoteDiscount := quoteDiscountHandler.NewHandler(discountSvc, log)
	reconcileDiscount := reconcileDiscountHandler.NewHandler(discountSvc, log)
	createBlockedTime := createBlockedTimeHandler.NewHandler(blockedTimeSvc, log)
	getBlockedTimes := getBlockedTimesHandler.NewHandler(blockedTimeSvc, log)
	deleteBlockedTime := deleteBlockedTimeHandler.NewHandler(blockedTimeSvc, log)
	unblockDate := unblockDateHandler.NewHandler(blockedTimeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Клиенты ---
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/discount", quoteDiscount.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют записи в таблице администраторов)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.Admin(adminRepository, log))

	// --- Блокировки календаря ---
	admin.HandleFunc("/blocked-times", createBlockedTime.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times", getBlockedTimes.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-times", unblockDate.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/blocked-times/{blockedTimeId}", deleteBlockedTime.Handle).Methods(http.MethodDelete)

	// --- Скидки ---
	admin.HandleFunc("/customers/{customerId}/discount/reconcile", reconcileDiscount.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
