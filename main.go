package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/medtext-analyzer/config"
	"github.com/giygas/medtext-analyzer/data"
	"github.com/giygas/medtext-analyzer/handlers"
	"github.com/giygas/medtext-analyzer/health"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/scheduler"
	"github.com/giygas/medtext-analyzer/server"
	"github.com/giygas/medtext-analyzer/validation"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	// A log file failure is already reported and logging goes on to the console
	_ = logging.InitLogger(logging.Options{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logging.Close()

	logging.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"address", cfg.Address,
		"port", cfg.Port,
		"reference_dir", cfg.ReferenceDir,
		"reload_times", cfg.ReloadTimes,
	)

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	validator := validation.NewDataValidator(cfg.MaxTextLength)
	parser := referenceparser.NewReferenceParser(cfg.ReferenceDir)

	sched := scheduler.NewScheduler(dataContainer, parser, validator, cfg.ReloadTimes)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		logging.Close()
		os.Exit(1)
	}
	defer sched.Stop()

	if cfg.WatchReference {
		if err := sched.Watch(cfg.ReferenceDir); err != nil {
			logging.Warn("Reference directory watch disabled", "error", err)
		}
	}

	healthChecker := health.NewHealthChecker(dataContainer, cfg.ReloadTimes)
	httpHandler := handlers.NewHTTPHandler(dataContainer, validator, healthChecker, handlers.Options{
		BatchWorkers:  cfg.BatchWorkers,
		MaxUploadSize: cfg.MaxRequestBody,
	})

	srv := server.NewServer(cfg, httpHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logging.Info("Received signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logging.Error("Server failed", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
