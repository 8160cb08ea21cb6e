package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourorg/homenest/internal/handler"
	"github.com/yourorg/homenest/internal/infrastructure/logger"
	"github.com/yourorg/homenest/internal/infrastructure/mongodb"
	"github.com/yourorg/homenest/internal/observability/metrics"
	"github.com/yourorg/homenest/internal/observability/tracing"
	"github.com/yourorg/homenest/internal/repository"
	"github.com/yourorg/homenest/internal/security/audit"
	"github.com/yourorg/homenest/internal/security/auth"
	"github.com/yourorg/homenest/internal/security/middleware"
	"github.com/yourorg/homenest/internal/service"
	"github.com/yourorg/homenest/internal/worker"
	"github.com/yourorg/homenest/pkg/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting HomeNest server", slog.String("environment", cfg.Environment))

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(ctx, log, "homenest", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to MongoDB
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error("mongo disconnect error", slog.String("error", err.Error()))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)
	log.Info("connected to MongoDB", slog.String("database", cfg.MongoDatabase))

	// 5. Initialize repositories
	propertyRepo := repository.NewMongoPropertyRepository(db, log, cfg.StoreTimeout)
	ratingRepo := repository.NewMongoRatingRepository(db, log, cfg.StoreTimeout)

	// 6. Initialize services
	propertyService := service.NewPropertyService(propertyRepo, ratingRepo, log)
	ratingService := service.NewRatingService(ratingRepo, log)

	// 7. Initialize security components
	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	auditLogger := audit.NewLogger(log)
	guard := middleware.RequireAuth(verifier, log)

	// 8. Initialize handlers
	propertyHandler := handler.NewPropertyHandler(propertyService, auditLogger, log, int64(cfg.FeaturedLimit))
	ratingHandler := handler.NewRatingHandler(ratingService, auditLogger, log)
	healthHandler := handler.NewHealthHandler(mongoClient, log)

	// 9. Setup HTTP routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/properties", propertyHandler.List)
	mux.HandleFunc("GET /api/properties/featured", propertyHandler.Featured)
	mux.HandleFunc("GET /api/properties/{id}", propertyHandler.Get)
	mux.HandleFunc("GET /api/ratings/property/{propertyId}", ratingHandler.ListByProperty)

	// Protected routes
	mux.Handle("POST /api/properties", guard(http.HandlerFunc(propertyHandler.Create)))
	mux.Handle("GET /api/properties/user/{email}", guard(http.HandlerFunc(propertyHandler.ListByUser)))
	mux.Handle("PUT /api/properties/{id}", guard(http.HandlerFunc(propertyHandler.Update)))
	mux.Handle("DELETE /api/properties/{id}", guard(http.HandlerFunc(propertyHandler.Delete)))
	mux.Handle("POST /api/ratings", guard(http.HandlerFunc(ratingHandler.Create)))
	mux.Handle("GET /api/ratings/user/{email}", guard(http.HandlerFunc(ratingHandler.ListByUser)))

	// CORS honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> metrics -> content type -> CORS -> routes
	rootHandler := withRequestID(
		metrics.HTTPMetricsMiddleware(
			middleware.ValidateJSONContentType(log)(handlerWithCORS),
		),
		log,
	)

	// 10. Start the orphaned-rating reaper if enabled
	if cfg.ReaperEnabled {
		reaper := worker.NewRatingReaper(propertyRepo, ratingRepo, log, cfg.ReaperInterval)
		go reaper.Start(ctx)
	}

	// 11. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "bearer-jwt"),
		slog.Bool("reaper", cfg.ReaperEnabled),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	cancel() // Stop the reaper
	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
