package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"fleetdock/internal/audit"
	"fleetdock/internal/auth"
	"fleetdock/internal/config"
	"fleetdock/internal/fleet/application"
	fleethttp "fleetdock/internal/fleet/interfaces/http"
	"fleetdock/internal/fleet/store"
	"fleetdock/internal/observability/metrics"
	"fleetdock/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	dsn := cfg.Storage.Path
	if cfg.Storage.Driver == storage.DriverPostgres {
		dsn = cfg.Storage.URL
	}
	kv, err := storage.Open(ctx, cfg.Storage.Driver, dsn)
	if err != nil {
		logger.Fatalf("storage open error: %v", err)
	}
	defer kv.Close()

	metrics.Init()

	st, err := store.Open(ctx, kv)
	if err != nil {
		logger.Fatalf("store open error: %v", err)
	}
	sessions, err := auth.OpenSessions(ctx, kv, []byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("sessions open error: %v", err)
	}
	auditLog, err := audit.NewStore(kv)
	if err != nil {
		logger.Fatalf("audit store error: %v", err)
	}
	service, err := application.NewService(st, auditLog, logger)
	if err != nil {
		logger.Fatalf("service error: %v", err)
	}

	router, err := fleethttp.NewRouter(service, sessions, []byte(cfg.JWTSecret))
	if err != nil {
		logger.Fatalf("router error: %v", err)
	}

	server := &http.Server{Addr: cfg.ListenAddr, Handler: loggingMiddleware(router, logger)}
	logger.Printf("fleetdock listening on %s (storage driver %s)", cfg.ListenAddr, cfg.Storage.Driver)
	logger.Fatal(server.ListenAndServe())
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
