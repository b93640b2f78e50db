package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/internal/logging"
	"github.com/iwvelando/wishlist-scheduler/internal/server"
	"github.com/iwvelando/wishlist-scheduler/internal/wishlist"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"github.com/iwvelando/wishlist-scheduler/pkg/validation"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	migrate := flag.Bool("migrate", false, "create or update the projection tables before serving")
	flag.Parse()

	if err := validation.ValidateLogLevel(*logLevel); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid log level\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}

	// Server logging settings take precedence when present.
	loggingConf := conf.Logging
	if serverConf.Logging != (config.LoggingConfig{}) {
		loggingConf = serverConf.Logging
	}
	logger, err := logging.New(loggingConf, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := wishlist.Setup(ctx, logger, conf)
	defer cleanup()
	if err != nil {
		logger.Fatal("failed to set up scheduler",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *migrate {
		if err := svc.Migrate(ctx); err != nil {
			logger.Fatal("failed to migrate projection store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("projection store migrated", zap.String("op", "main"))
	}

	srv := &http.Server{
		Addr:         serverConf.Address,
		Handler:      server.NewHandler(logger, svc, serverConf, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting wishlist server",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.String("version", version),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("server exited", zap.String("op", "main"))
}
