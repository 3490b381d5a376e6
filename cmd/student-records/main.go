// main is the entry point of the student records service.
//
// STARTUP SEQUENCE:
//
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the storage slot (SQLite file or in-memory)
//  4. Build the store, hydrating it from the slot or from seed data
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-records --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-records
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
	"github.com/aanand-mishra/student-records/internal/store"
	"github.com/aanand-mishra/student-records/internal/validate"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// The logger is also installed as the slog default so the handlers,
	// which log through the package-level slog functions, share its format.
	log := setupLogger(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting student-records",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Open the Storage Slot ──────────────────────────────────────────
	slot, closeSlot, err := openSlot(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSlot()

	log.Info("storage initialised",
		slog.String("driver", cfg.StorageDriver),
		slog.String("path", cfg.StoragePath))

	// ── 4. Build the Store ────────────────────────────────────────────────
	// A bad or missing payload is not fatal here: the store logs it and
	// starts from the seed collection.
	st := store.New(slot, cfg.StorageKey, log)
	v := validate.New()

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: newRouter(st, v),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newRouter maps every route onto its handler.
//
// Route table:
//
//	POST   /api/students        → add a student
//	GET    /api/students        → students matching the current criteria
//	GET    /api/students/{id}   → one student
//	PUT    /api/students/{id}   → replace a student
//	DELETE /api/students/{id}   → delete a student
//	GET    /api/criteria        → current search term and filters
//	PUT    /api/criteria        → replace search term and filters
//	GET    /api/stats           → aggregate statistics
//	GET    /api/options         → allowed course and year values
func newRouter(st student.Store, v *validate.Validator) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(st, v))
	router.HandleFunc("GET /api/students", student.GetList(st))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(st))
	router.HandleFunc("PUT /api/students/{id}", student.Update(st, v))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(st))

	router.HandleFunc("GET /api/criteria", student.GetCriteria(st))
	router.HandleFunc("PUT /api/criteria", student.SetCriteria(st))
	router.HandleFunc("GET /api/stats", student.GetStats(st))
	router.HandleFunc("GET /api/options", student.GetOptions())

	return router
}

// openSlot returns the slot backend named by cfg.StorageDriver and a
// function that releases it.
func openSlot(cfg *config.Config) (storage.Slot, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	default:
		db, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
