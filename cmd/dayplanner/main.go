package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayplanner/internal/config"
	"dayplanner/internal/server"
	"dayplanner/internal/storage/sqlite"
	"dayplanner/internal/util"
)

func main() {
	configFlag := flag.String("config", util.EnvOrDefault("PLANNER_CONFIG", ""), "Path to YAML config file")
	addrFlag := flag.String("addr", util.EnvOrDefault("PLANNER_ADDR", ""), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("PLANNER_DB_PATH", ""), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("PLANNER_STATIC_DIR", ""), "Directory with built frontend")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			logger.Error("unable to load config", slog.String("path", *configFlag), slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *staticFlag != "" {
		cfg.StaticDir = *staticFlag
	}

	logger.Info("day planner starting",
		slog.String("workday_start", cfg.Workday.Start),
		slog.String("workday_end", cfg.Workday.End))

	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(store, logger, cfg.StaticDir, cfg.Workday)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
