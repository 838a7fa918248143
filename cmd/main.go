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

	checkAvailabilityHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/create_booking"
	createCarHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/create_car"
	createPricingRuleHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/create_pricing_rule"
	getBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_booking_stats"
	getCarHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_car"
	getPriceHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_price"
	listBookingsHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/list_bookings"
	listCarsHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/list_cars"
	listPricingRulesHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/list_pricing_rules"
	togglePricingRuleHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/toggle_pricing_rule"
	updateBookingStatusHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/update_booking_status"
	updateCarHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/update_car"
	updateCarStatusHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/update_car_status"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/config"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/events"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/memory"
	pricingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	fleetService "github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	pricingService "github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	checkAvailabilityUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/migrator"
	"github.com/m04kA/SMC-CarRentalService/pkg/txmanager"
)

// bookingStore все операции с бронированиями, нужные сервису и use case создания
type bookingStore interface {
	bookingsService.BookingRepository
	createBookingUC.BookingRepository
}

// TxManager общий интерфейс для postgres менеджера транзакций и txmanager.Noop
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного backend
type storage struct {
	cars      fleetService.CarRepository
	bookings  bookingStore
	rules     pricingService.RuleRepository
	txManager TxManager
	close     func()
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

	log.Info("Starting SMC-CarRentalService...")
	log.Info("Configuration loaded from config.toml (storage=%s, lock=%s, availability=%s)",
		cfg.Storage.Backend, cfg.Lock.Backend, cfg.Booking.AvailabilityPolicy)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store *storage
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh, log)
	default:
		store, err = newMemoryStorage(cfg, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Лок на машину
	var carLocker bookingsService.CarLocker
	switch cfg.Lock.Backend {
	case config.LockRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		carLocker = lock.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Lock.TTLMs)*time.Millisecond,
			time.Duration(cfg.Lock.RetryIntervalMs)*time.Millisecond,
			time.Duration(cfg.Lock.WaitTimeoutMs)*time.Millisecond,
			log,
		)
		log.Info("Redis car locks enabled (addr=%s)", cfg.Redis.Addr)
	default:
		carLocker = lock.NewKeyedMutex()
		log.Info("In-process car locks enabled")
	}

	// Публикация событий
	var publisher bookingsService.EventPublisher
	if cfg.RabbitMQ.Enabled {
		rabbit, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info("RabbitMQ disabled, booking events go to the log")
	}

	// Инициализируем сервисы
	fleetSvc := fleetService.NewService(store.cars, log)
	pricingSvc := pricingService.NewService(store.cars, store.rules, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.cars,
		carLocker,
		store.txManager,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		store.bookings,
		store.cars,
		cfg.Booking.StrictAvailability(),
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.cars,
		checkAvailabilityUseCase,
		pricingSvc,
		carLocker,
		store.txManager,
		publisher,
		log,
	)

	// Фоновое завершение закончившихся аренд
	var scheduler *jobs.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler, err = jobs.NewScheduler(cfg.Scheduler.CompleteSpec, bookingSvc, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		scheduler.Start()
	}

	// Инициализируем handlers
	listCars := listCarsHandler.NewHandler(fleetSvc, log)
	getCar := getCarHandler.NewHandler(fleetSvc, log)
	createCar := createCarHandler.NewHandler(fleetSvc, log)
	updateCar := updateCarHandler.NewHandler(fleetSvc, log)
	updateCarStatus := updateCarStatusHandler.NewHandler(fleetSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getPrice := getPriceHandler.NewHandler(pricingSvc, log)
	listPricingRules := listPricingRulesHandler.NewHandler(pricingSvc, log)
	createPricingRule := createPricingRuleHandler.NewHandler(pricingSvc, log)
	togglePricingRule := togglePricingRuleHandler.NewHandler(pricingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, X-User-ID только подписывает запросы и не проверяется
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Автопарк ---
	api.HandleFunc("/cars", listCars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars", createCar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cars/{carId}", getCar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}", updateCar.Handle).Methods(http.MethodPut)
	api.HandleFunc("/cars/{carId}/status", updateCarStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/cars/{carId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}/price", getPrice.Handle).Methods(http.MethodGet)

	// --- Ценовые правила ---
	api.HandleFunc("/pricing-rules", listPricingRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pricing-rules", createPricingRule.Handle).Methods(http.MethodPost)
	api.HandleFunc("/pricing-rules/{ruleId}/toggle", togglePricingRule.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	// stats регистрируется раньше {bookingId}
	api.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/{action:approve|reject|cancel|complete}",
		updateBookingStatus.Handle).Methods(http.MethodPatch)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler did not stop in time: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// newPostgresStorage подключается к базе, накатывает миграции и собирает репозитории
func newPostgresStorage(cfg *config.Config, m *metrics.Metrics, stop <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrationsPath != "" {
		if err := migrator.Up(cfg.Database.MigrationsPath, cfg.Database.URL()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)
	}

	// При m == nil обертка только пробрасывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stop)

	return &storage{
		cars:      carRepo.NewRepository(wrappedDB),
		bookings:  bookingRepo.NewRepository(wrappedDB),
		rules:     pricingRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB),
		close:     func() { _ = db.Close() },
	}, nil
}

// newMemoryStorage собирает in-memory репозитории, автопарк и правила берутся из seed файла
func newMemoryStorage(cfg *config.Config, log *logger.Logger) (*storage, error) {
	var (
		cars  []*domain.Car
		rules []*domain.PricingRule
	)

	if cfg.Storage.SeedFile != "" {
		seed, err := memory.LoadSeed(cfg.Storage.SeedFile)
		if err != nil {
			return nil, err
		}
		if cars, err = seed.DomainCars(); err != nil {
			return nil, err
		}
		if rules, err = seed.DomainRules(); err != nil {
			return nil, err
		}
	}
	log.Info("In-memory storage seeded (cars=%d, pricing_rules=%d)", len(cars), len(rules))

	return &storage{
		cars:      memory.NewCarRepository(cars...),
		bookings:  memory.NewBookingRepository(),
		rules:     memory.NewPricingRepository(rules...),
		txManager: txmanager.Noop{},
		close:     func() {},
	}, nil
}
