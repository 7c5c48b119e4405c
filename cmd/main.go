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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	applyCouponHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/apply_coupon"
	changeStepHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/change_step"
	createDraftHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/create_draft"
	discardDraftHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/discard_draft"
	getDraftHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/get_draft"
	getEndSlotsHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/get_end_slots"
	getReceiptHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/get_receipt"
	getStartSlotsHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/get_start_slots"
	listReceiptsHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/list_receipts"
	selectEndSlotHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/select_end_slot"
	submitBookingHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/submit_booking"
	updateDraftHandler "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/handlers/update_draft"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/api/middleware"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/config"
	draftStore "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/draft"
	receiptRepo "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/infra/storage/receipt"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/integrations/studioapi"
	availabilityService "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/availability"
	draftsService "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/drafts"
	receiptsService "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/service/receipts"
	applyCouponUC "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/apply_coupon"
	submitBookingUC "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/usecase/submit_booking"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/dbmetrics"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/logger"
	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/metrics"
)

const (
	poolStatsInterval   = 15 * time.Second
	limiterCleanupEvery = time.Minute
	limiterIdleTimeout  = 10 * time.Minute
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting booking-flow service...")
	log.Info("Configuration loaded from %s", configPath)

	// Фоновые задачи останавливаются вместе с сервером
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Метрики. При выключенных метриках коллекторы пишут в реестр, который никто не отдает.
	registry := prometheus.DefaultRegisterer
	if !cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
	}
	metricsCollector := metrics.NewWithRegistry(cfg.Metrics.ServiceName, registry)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (квитанции)
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var receiptRepository *receiptRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.New(db, cfg.Metrics.ServiceName, registry)
		go wrappedDB.CollectPoolStats(bgCtx, poolStatsInterval)
		log.Info("Database metrics collection started")

		receiptRepository = receiptRepo.NewRepository(wrappedDB)
	} else {
		receiptRepository = receiptRepo.NewRepository(db)
	}

	// Хранилище черновиков
	var drafts draftStore.Store
	switch cfg.Drafts.Storage {
	case config.DraftStorageRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisStore := draftStore.NewRedisStore(redisClient, cfg.Drafts.TTL())
		if err := redisStore.Ping(bgCtx); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		drafts = redisStore
		log.Info("Drafts stored in redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Drafts.TTL())

	default:
		memoryStore := draftStore.NewMemoryStore(cfg.Drafts.TTL(), metricsCollector)
		go memoryStore.RunJanitor(bgCtx, time.Duration(cfg.Drafts.JanitorInterval)*time.Second)
		drafts = memoryStore
		log.Info("Drafts stored in memory (ttl=%s, janitor=%ds)", cfg.Drafts.TTL(), cfg.Drafts.JanitorInterval)
	}

	// Клиент REST API студий
	studioClient := studioapi.NewClient(
		cfg.StudioAPI.URL,
		time.Duration(cfg.StudioAPI.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Studio API client initialized (url=%s, timeout=%ds)", cfg.StudioAPI.URL, cfg.StudioAPI.Timeout)

	// Инициализируем сервисы
	draftSvc := draftsService.NewService(drafts, log)
	availabilitySvc := availabilityService.NewReconciler(drafts, studioClient, metricsCollector, log)
	receiptSvc := receiptsService.NewService(receiptRepository, log)

	// Инициализируем use cases
	applyCouponUseCase := applyCouponUC.NewUseCase(drafts, studioClient, metricsCollector, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(drafts, studioClient, receiptRepository, metricsCollector, log)

	// Инициализируем handlers
	createDraft := createDraftHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	updateDraft := updateDraftHandler.NewHandler(draftSvc, log)
	discardDraft := discardDraftHandler.NewHandler(draftSvc, log)
	changeStep := changeStepHandler.NewHandler(draftSvc, log)
	getStartSlots := getStartSlotsHandler.NewHandler(availabilitySvc, log)
	getEndSlots := getEndSlotsHandler.NewHandler(availabilitySvc, log)
	selectEndSlot := selectEndSlotHandler.NewHandler(availabilitySvc, log)
	applyCoupon := applyCouponHandler.NewHandler(applyCouponUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getReceipt := getReceiptHandler.NewHandler(receiptSvc, log)
	listReceipts := listReceiptsHandler.NewHandler(receiptSvc, log)

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		log.Fatal("Failed to parse trusted proxies: %v", err)
	}
	couponLimiter := middleware.NewRateLimiter(cfg.RateLimit.CouponPerMinute, cfg.RateLimit.CouponBurst, trustedProxies, log)
	go couponLimiter.RunCleanup(bgCtx, limiterCleanupEvery, limiterIdleTimeout)
	receiptsLimiter := middleware.NewRateLimiter(cfg.RateLimit.ReceiptsPerMinute, cfg.RateLimit.ReceiptsBurst, trustedProxies, log)
	go receiptsLimiter.RunCleanup(bgCtx, limiterCleanupEvery, limiterIdleTimeout)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Черновики ---
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}", updateDraft.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/drafts/{draftId}", discardDraft.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/drafts/{draftId}/steps/{direction}", changeStep.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/drafts/{draftId}/start-slots", getStartSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/end-slots", getEndSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/end-slot", selectEndSlot.Handle).Methods(http.MethodPut)

	// --- Купон и отправка ---
	api.Handle("/drafts/{draftId}/coupon", couponLimiter.Limit(http.HandlerFunc(applyCoupon.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Квитанции ---
	api.Handle("/receipts", receiptsLimiter.Limit(http.HandlerFunc(listReceipts.Handle))).Methods(http.MethodGet)
	api.Handle("/receipts/{bookingRef}", receiptsLimiter.Limit(http.HandlerFunc(getReceipt.Handle))).Methods(http.MethodGet)

	// CORS для SPA
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	stopBackground()
	log.Info("Server stopped gracefully")
}
