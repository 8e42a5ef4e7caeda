package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
	"nomina/internal/platform/config"
	"nomina/internal/platform/db"
	"nomina/internal/platform/seed"
	filestore "nomina/internal/platform/storage/file"
	pgstore "nomina/internal/platform/storage/postgres"
	authhandler "nomina/internal/transport/http/handlers/auth"
	dashboardhandler "nomina/internal/transport/http/handlers/dashboard"
	payrollhandler "nomina/internal/transport/http/handlers/payroll"
	rosterhandler "nomina/internal/transport/http/handlers/roster"
	vacationhandler "nomina/internal/transport/http/handlers/vacation"
	"nomina/internal/transport/http/middleware"
)

// store is the union of the per-domain persistence interfaces, satisfied by
// both storage drivers.
type store interface {
	payroll.LedgerStore
	roster.Store
	vacation.Store
	auth.Store
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	var st store
	var pool *pgxpool.Pool
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		var err error
		pool, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, "migrations"); err != nil {
				log.Fatalf("migrations failed: %v", err)
			}
		}
		st = pgstore.New(pool)
	default:
		fs, err := filestore.New(cfg.DataDir)
		if err != nil {
			log.Fatalf("data dir setup failed: %v", err)
		}
		st = fs
	}

	var (
		employeeSeed []roster.Employee
		payrollSeed  []payroll.Record
		vacationSeed []vacation.Request
		userSeed     []auth.User
	)
	if cfg.RunSeed {
		employeeSeed = seed.Employees()
		payrollSeed = seed.PayrollRecords()
		vacationSeed = seed.VacationRequests()
		var err error
		userSeed, err = seed.Users()
		if err != nil {
			log.Fatalf("seed users failed: %v", err)
		}
	}

	ros, err := roster.New(ctx, st, employeeSeed)
	if err != nil {
		log.Fatalf("roster init failed: %v", err)
	}
	ledger, err := payroll.NewLedger(ctx, st, payrollSeed)
	if err != nil {
		log.Fatalf("ledger init failed: %v", err)
	}
	vacations, err := vacation.New(ctx, st, vacationSeed)
	if err != nil {
		log.Fatalf("vacations init failed: %v", err)
	}
	authService, err := auth.NewService(ctx, st, cfg.JWTSecret, userSeed)
	if err != nil {
		log.Fatalf("auth init failed: %v", err)
	}

	payrollService := payroll.NewService(ledger, ros)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			payrollhandler.NewHandler(payrollService).RegisterRoutes(r)
			rosterhandler.NewHandler(ros).RegisterRoutes(r)
			vacationhandler.NewHandler(vacations, ros).RegisterRoutes(r)
			dashboardhandler.NewHandler(ledger, ros, vacations).RegisterRoutes(r)
		})
	})

	log.Printf("nomina server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
