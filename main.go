package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"appraisal-cloud/internal/audit"
	"appraisal-cloud/internal/auth"
	"appraisal-cloud/internal/geocode"
	"appraisal-cloud/internal/observability/metrics"
	"appraisal-cloud/internal/valuation/application"
	valuationrepo "appraisal-cloud/internal/valuation/infrastructure/postgres"
	valuationinterfaces "appraisal-cloud/internal/valuation/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}
	if err := valuationrepo.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatalf("schema error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	engineCfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("engine config error: %v", err)
	}

	var geocoder application.GeocodeResolver
	if cfg.GeocodeBaseURL != "" {
		client, err := geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent)
		if err != nil {
			logger.Fatalf("geocode client error: %v", err)
		}
		geocoder = client
	}

	historyRepo := valuationrepo.NewHistoryRepository(db)
	appraisalService, err := application.NewAppraisalService(historyRepo, geocoder, engineCfg, application.SystemClock{}, logger)
	if err != nil {
		logger.Fatalf("appraisal service error: %v", err)
	}
	appraisalHandler, err := valuationinterfaces.NewAppraisalHandler(appraisalService, auditRepo)
	if err != nil {
		logger.Fatalf("appraisal handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/appraisals", appraisalHandler)
	mux.Handle("/api/v1/appraisals/", appraisalHandler)
	mux.Handle("/api/v1/exports/appraisals.xlsx", appraisalHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL      string
	HTTPAddr         string
	JWTSecret        string
	GeocodeBaseURL   string
	GeocodeUserAgent string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:      getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:         getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:        getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		GeocodeBaseURL:   getenvDefault("GEOCODE_BASE_URL", ""),
		GeocodeUserAgent: getenvDefault("GEOCODE_USER_AGENT", "appraisal-cloud/1.0"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
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
