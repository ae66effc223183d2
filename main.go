package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"tariff-simulator/internal/assistant"
	"tariff-simulator/internal/audit"
	"tariff-simulator/internal/auth"
	"tariff-simulator/internal/observability/metrics"
	"tariff-simulator/internal/rating/domain"
	simapp "tariff-simulator/internal/simulation/application"
	"tariff-simulator/internal/simulation/domain"
	simmemory "tariff-simulator/internal/simulation/infrastructure/memory"
	simrepo "tariff-simulator/internal/simulation/infrastructure/postgres"
	simhttp "tariff-simulator/internal/simulation/interfaces/http"
	tariffapp "tariff-simulator/internal/tariffs/application"
	"tariff-simulator/internal/tariffs/domain"
	tarifffile "tariff-simulator/internal/tariffs/infrastructure/file"
	tariffmemory "tariff-simulator/internal/tariffs/infrastructure/memory"
	tariffrepo "tariff-simulator/internal/tariffs/infrastructure/postgres"
	tariffhttp "tariff-simulator/internal/tariffs/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	simCfg, err := simapp.LoadConfig()
	if err != nil {
		logger.Fatalf("simulator config error: %v", err)
	}

	var (
		db          *sql.DB
		tariffStore tariffs.Repository
		history     simulation.Repository
		auditLogger audit.Logger
	)
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		tariffStore = tariffrepo.NewTariffRepository(db)
		history = simrepo.NewHistoryRepository(db)
		auditLogger = audit.NewRepository(db)
	} else {
		logger.Printf("DATABASE_URL not set, keeping tariffs and history in memory")
		tariffStore = tariffmemory.NewTariffRepository()
		history = simmemory.NewHistoryRepository()
		auditLogger = audit.NewMemoryLogger()
	}
	metrics.Init(db, logger)

	tariffService, err := tariffapp.NewService(tariffStore)
	if err != nil {
		logger.Fatalf("tariff service error: %v", err)
	}
	if cfg.TariffsSeedFile != "" {
		seed, err := tarifffile.LoadFile(cfg.TariffsSeedFile)
		if err != nil {
			logger.Fatalf("tariff seed error: %v", err)
		}
		added, err := tariffService.Seed(context.Background(), seed)
		if err != nil {
			logger.Fatalf("tariff seed error: %v", err)
		}
		logger.Printf("tariff seed: %d of %d added", added, len(seed))
	}

	var helper simapp.Assistant
	if cfg.AssistantBaseURL != "" {
		client, err := assistant.NewClient(cfg.AssistantBaseURL, cfg.AssistantAPIKey, simCfg.AssistantTimeout)
		if err != nil {
			logger.Fatalf("assistant client error: %v", err)
		}
		helper = client
	} else {
		logger.Printf("ASSISTANT_BASE_URL not set, using fallback messages")
	}

	engine, err := rating.NewEngine(simCfg.Taxes)
	if err != nil {
		logger.Fatalf("rating engine error: %v", err)
	}
	pipeline, err := simapp.NewPipeline(simCfg.Layout, engine)
	if err != nil {
		logger.Fatalf("pipeline error: %v", err)
	}
	simService, err := simapp.NewService(pipeline, tariffService, history, helper, simCfg, logger, simapp.SystemClock{})
	if err != nil {
		logger.Fatalf("simulation service error: %v", err)
	}

	simulationHandler, err := simhttp.NewHandler(simService, auditLogger, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatalf("simulation handler error: %v", err)
	}
	tariffHandler, err := tariffhttp.NewHandler(tariffService, auditLogger)
	if err != nil {
		logger.Fatalf("tariff handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/simulations", simulationHandler)
	mux.Handle("/api/v1/simulations/", simulationHandler)
	mux.Handle("/api/v1/users/", simulationHandler)
	mux.Handle("/api/v1/tariffs", tariffHandler)
	mux.Handle("/api/v1/tariffs/", tariffHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(corsMiddleware.Handler(authMiddleware.Wrap(mux)), logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL       string
	HTTPAddr          string
	JWTSecret         string
	AssistantBaseURL  string
	AssistantAPIKey   string
	TariffsSeedFile   string
	AllowedOrigins    []string
	MaxUploadBytes    int64
	ReadHeaderTimeout time.Duration
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:       getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:         getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		AssistantBaseURL:  getenvDefault("ASSISTANT_BASE_URL", ""),
		AssistantAPIKey:   getenvDefault("ASSISTANT_API_KEY", ""),
		TariffsSeedFile:   getenvDefault("TARIFFS_SEED_FILE", ""),
		AllowedOrigins:    splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MaxUploadBytes:    int64(getenvIntDefault("MAX_UPLOAD_BYTES", int(simhttp.DefaultMaxUploadBytes))),
		ReadHeaderTimeout: getenvDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
