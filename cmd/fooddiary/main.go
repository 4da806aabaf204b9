// Package main runs the food diary, a server-rendered nutrition log.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/webtriad/webtriad/internal/app"
	"github.com/webtriad/webtriad/internal/app/httpapi"
	"github.com/webtriad/webtriad/internal/app/storage/postgres"
	"github.com/webtriad/webtriad/internal/config"
	"github.com/webtriad/webtriad/internal/httpserver"
	"github.com/webtriad/webtriad/internal/metrics"
	"github.com/webtriad/webtriad/internal/middleware"
	"github.com/webtriad/webtriad/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("fooddiary").WithError(err).Error("load configuration")
		os.Exit(1)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).WithField("service", "fooddiary")

	stores := app.Stores{}
	if cfg.Database.DSN != "" {
		db, err := postgres.Open(cfg.Database.DSN)
		if err != nil {
			log.WithError(err).Error("connect to postgres")
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			log.WithError(err).Error("run migrations")
			os.Exit(1)
		}
		store := postgres.New(db)
		stores = app.Stores{Members: store, Diary: store, Users: store, Questions: store}
	} else {
		log.Warn("DATABASE_DSN not set, using the in-memory store")
	}

	application := app.New(stores, nil, log)

	m := metrics.New("fooddiary")
	pages := httpapi.NewDiaryRouter(application, log)
	pages.Use(middleware.Logging(log), middleware.Metrics(m))

	limiter := middleware.NewRateLimiter(100, 200, log)

	root := http.NewServeMux()
	root.HandleFunc("/healthz", healthz)
	root.Handle("/metrics", m.Handler())
	root.Handle("/", limiter.Handler(pages))

	run(cfg, root, log)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

func run(cfg *config.Config, handler http.Handler, log *logger.Logger) {
	srv := httpserver.New(cfg.Server.Addr(), handler, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
		os.Exit(1)
	}
}
