package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"carelink/internal/domain/audit"
	"carelink/internal/domain/auth"
	"carelink/internal/domain/billing"
	"carelink/internal/domain/core"
	"carelink/internal/domain/matching"
	"carelink/internal/domain/notifications"
	"carelink/internal/domain/scheduling"
	"carelink/internal/platform/config"
	"carelink/internal/platform/db"
	"carelink/internal/platform/jobs"
	"carelink/internal/platform/metrics"
	audithandler "carelink/internal/transport/http/handlers/audit"
	authhandler "carelink/internal/transport/http/handlers/auth"
	billinghandler "carelink/internal/transport/http/handlers/billing"
	corehandler "carelink/internal/transport/http/handlers/core"
	matchinghandler "carelink/internal/transport/http/handlers/matching"
	notificationshandler "carelink/internal/transport/http/handlers/notifications"
	schedulinghandler "carelink/internal/transport/http/handlers/scheduling"
	"carelink/internal/transport/http/middleware"
)

// Run wires the full application and blocks serving HTTP.
func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	coreStore := core.NewStore(pool)
	schedulingStore := scheduling.NewStore(pool)
	schedulingSvc := scheduling.NewService(schedulingStore, cfg.WeeklyHoursCap)
	matchingSvc := matching.NewService(coreStore, schedulingSvc)
	billingSvc := billing.NewService(schedulingStore, cfg.MedicaidRoundingDefault)
	authStore := auth.NewStore(pool)
	auditSvc := audit.New(pool)
	notificationsSvc := notifications.New(notifications.NewStore(pool))

	jobRunner := jobs.New(pool, cfg, schedulingSvc)
	jobRunner.Start(ctx)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/refresh", authHandler.HandleRefresh)
		r.Post("/auth/logout", authHandler.HandleLogout)

		corehandler.NewHandler(coreStore, auditSvc).RegisterRoutes(r)
		schedulinghandler.NewHandler(schedulingSvc, auditSvc, notificationsSvc, cfg).RegisterRoutes(r)
		matchinghandler.NewHandler(matchingSvc).RegisterRoutes(r)
		billinghandler.NewHandler(billingSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationsSvc).RegisterRoutes(r)
	})

	slog.Info("carelink server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// MigrateOnly applies migrations and exits, for deploy pipelines that
// run schema changes before rolling the service.
func MigrateOnly() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, "migrations"); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
